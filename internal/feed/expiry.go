package feed

import (
	"time"

	"aura/internal/dbmysql"
)

// DefaultStoryTTL is how long a story stays visible after creation.
const DefaultStoryTTL = 24 * time.Hour

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// StoryActive reports whether the story is still visible at now. The window
// is half-open: a story is active strictly before expires_at and inactive at
// the instant itself.
func StoryActive(story *dbmysql.Story, now time.Time) bool {
	return now.Before(story.ExpiresAt)
}

// StoryExpiresAt computes the expiry for a story created at createdAt.
func StoryExpiresAt(createdAt time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultStoryTTL
	}
	return createdAt.Add(ttl)
}

func ValidMediaKind(kind string) bool {
	return kind == MediaKindImage || kind == MediaKindVideo
}
