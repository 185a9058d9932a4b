package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/yukikurage/twitter-clone-api/internal/config"
	"github.com/yukikurage/twitter-clone-api/internal/database"
	"github.com/yukikurage/twitter-clone-api/internal/middleware"
	"github.com/yukikurage/twitter-clone-api/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.TweetsPerUser, "tweets", opts.TweetsPerUser, "tweets per user")
	flag.IntVar(&opts.MaxReplies, "replies", opts.MaxReplies, "maximum replies per tweet")
	flag.IntVar(&opts.MaxFollows, "follows", opts.MaxFollows, "maximum follows per user")
	flag.IntVar(&opts.MaxFavorites, "favorites", opts.MaxFavorites, "maximum favorites per user")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for every seeded user")
	flag.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 for random")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(middleware.NewLogger(os.Stdout, cfg.IsProduction(), cfg.AppDebug))

	if cfg.IsProduction() {
		slog.Error("refusing to seed a production database")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	result, err := seed.NewSeeder(database.GetDB(), opts).Run(context.Background())
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seeding complete",
		"users", result.Users,
		"tweets", result.Tweets,
		"replies", result.Replies,
		"follows", result.Follows,
		"favorites", result.Favorites,
	)
}
