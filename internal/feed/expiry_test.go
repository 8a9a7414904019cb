package feed

import (
	"testing"
	"time"

	"aura/internal/dbmysql"

	"github.com/stretchr/testify/assert"
)

func TestStoryActive_Boundary(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	story := &dbmysql.Story{
		CreatedAt: created,
		ExpiresAt: StoryExpiresAt(created, DefaultStoryTTL),
	}

	assert.Equal(t, created.Add(24*time.Hour), story.ExpiresAt)

	assert.True(t, StoryActive(story, created))
	assert.True(t, StoryActive(story, created.Add(24*time.Hour-time.Nanosecond)))
	// the boundary instant itself is inactive
	assert.False(t, StoryActive(story, created.Add(24*time.Hour)))
	assert.False(t, StoryActive(story, created.Add(25*time.Hour)))
}

func TestStoryExpiresAt_DefaultTTL(t *testing.T) {
	created := time.Now()
	assert.Equal(t, created.Add(DefaultStoryTTL), StoryExpiresAt(created, 0))
	assert.Equal(t, created.Add(time.Hour), StoryExpiresAt(created, time.Hour))
}

func TestValidMediaKind(t *testing.T) {
	assert.True(t, ValidMediaKind("image"))
	assert.True(t, ValidMediaKind("video"))
	assert.False(t, ValidMediaKind("gif"))
	assert.False(t, ValidMediaKind(""))
}
