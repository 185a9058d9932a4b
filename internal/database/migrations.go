package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// timelineIndexes back the fetch plans that the struct tags cannot express.
var timelineIndexes = []index{
	{"tweets", "idx_tweets_user_created", "user_id, created_at"},
	{"replies", "idx_replies_tweet_created", "tweet_id, created_at"},
	{"followers", "idx_followers_follower_user", "follower_id, user_id"},
}

// AddIndexes adds composite indexes used by the timeline and profile queries.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range timelineIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
