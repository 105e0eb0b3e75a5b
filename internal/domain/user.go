package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted identity record. The password hash is stored but
// never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"hashed_password" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
