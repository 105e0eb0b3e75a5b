package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a single comment on a scraped post.
type Comment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID             string             `bson:"postId" json:"postId"`
	InstagramCommentID string             `bson:"instagramCommentId" json:"instagramCommentId"`
	Text               string             `bson:"text" json:"text"`
	Author             map[string]string  `bson:"author" json:"author"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a scraped Instagram post attributed to the user that requested
// the scrape. JSON field names follow the public API contract.
type Post struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	InstagramPostID string             `bson:"instagramPostId" json:"instagramPostId"`
	Caption         string             `bson:"caption" json:"caption"`
	Likes           int                `bson:"likes" json:"likes"`
	Shares          int                `bson:"shares" json:"shares"`
	ViewCount       int                `bson:"viewCount" json:"viewCount"`
	ScrapedAt       time.Time          `bson:"scrapedAt" json:"scrapedAt"`
	Comments        []Comment          `bson:"comments" json:"comments"`
}

// TopicCount is one entry of an engagement analysis breakdown.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// AnalysisResult summarizes the engagement of a set of posts.
type AnalysisResult struct {
	Summary string       `json:"summary"`
	Topics  []TopicCount `json:"topics"`
}
