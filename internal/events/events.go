// Package events publishes domain events after successful writes.
package events

import "time"

// Event subjects
const (
	SubjectTweetCreated    = "tweet.created"
	SubjectTweetDeleted    = "tweet.deleted"
	SubjectReplyCreated    = "reply.created"
	SubjectUserFollowed    = "user.followed"
	SubjectUserUnfollowed  = "user.unfollowed"
	SubjectFavoriteCreated = "favorite.created"
	SubjectFavoriteDeleted = "favorite.deleted"
)

// TweetEvent is published when a tweet is created or deleted
type TweetEvent struct {
	TweetID   uint64    `json:"tweet_id"`
	UserID    uint64    `json:"user_id"`
	Tweet     string    `json:"tweet,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReplyEvent is published when a user replies to a tweet
type ReplyEvent struct {
	ReplyID    uint64    `json:"reply_id"`
	TweetID    uint64    `json:"tweet_id"`
	TweetOwner uint64    `json:"tweet_owner"`
	UserID     uint64    `json:"user_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// FollowEvent is published when a follow edge is added or removed
type FollowEvent struct {
	UserID     uint64    `json:"user_id"`
	FollowerID uint64    `json:"follower_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// FavoriteEvent is published when a favorite is added or removed
type FavoriteEvent struct {
	TweetID   uint64    `json:"tweet_id"`
	UserID    uint64    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
