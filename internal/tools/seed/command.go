package seed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osama171998/minna-app/internal/config"
	"github.com/osama171998/minna-app/internal/database"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/repository"
	"github.com/osama171998/minna-app/internal/security"
	"github.com/osama171998/minna-app/internal/service"
	"github.com/osama171998/minna-app/internal/tools/common"
)

type options struct {
	envFile string
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "seed", Short: "Database seed tooling"}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newIndexesCommand(opts), newUserCommand(opts))
	return cmd
}

func newIndexesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the required MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := runIndexes(cmd.Context(), opts)
			if opts.ci {
				common.PrintCIResult(err == nil, "seed indexes", details, err)
			}
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
}

func newUserCommand(opts *options) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create an initial account",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := runUser(cmd.Context(), opts, email, password)
			if opts.ci {
				common.PrintCIResult(err == nil, "seed user", details, err)
			}
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "password for the new account")
	return cmd
}

func runIndexes(ctx context.Context, opts *options) ([]string, error) {
	cfg, db, cleanup, err := loadConfigDB(ctx, opts.envFile)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return []string{"ensured unique email index on " + cfg.MongoDatabase + ".users"}, nil
}

func runUser(ctx context.Context, opts *options, email, password string) ([]string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	cfg, db, cleanup, err := loadConfigDB(ctx, opts.envFile)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	hasher, err := security.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	jwtMgr, err := security.NewJWTManager(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, err
	}
	authSvc := service.NewAuthService(repository.NewUserRepository(db), hasher, jwtMgr, cfg.AccessTokenTTL)
	user, err := authSvc.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return []string{"created account: " + user.Email}, nil
}

func loadConfigDB(ctx context.Context, envFile string) (*config.Config, *mongo.Database, func(), error) {
	if err := common.LoadEnvFile(envFile); err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := observability.NewBootstrapLogger(cfg)
	client, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return cfg, database.Database(client, cfg), cleanup, nil
}
