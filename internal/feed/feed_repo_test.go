package feed

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"aura/internal/dbmysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// These tests exercise the transactional counter maintenance against a real
// MySQL. They are skipped unless MYSQL_TEST_DSN is exported, e.g.
//
//	MYSQL_TEST_DSN="root:root@tcp(localhost:3306)/aura_test?charset=utf8mb4&parseTime=True&loc=Local"
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set, skipping MySQL integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbmysql.Migrate(db))

	t.Cleanup(func() {
		db.Exec("DELETE FROM likes")
		db.Exec("DELETE FROM comments")
		db.Exec("DELETE FROM stories")
		db.Exec("DELETE FROM posts")
	})
	return db
}

func TestRepo_LikeCounterAtomicity(t *testing.T) {
	db := testDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	post := &dbmysql.Post{UserID: 1, MediaRef: "m1"}
	require.NoError(t, repo.CreatePost(ctx, post))

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(userID int64) {
			defer wg.Done()
			_, _ = repo.AddLike(ctx, post.PostID, userID)
		}(int64(100 + i))
	}
	wg.Wait()

	got, err := repo.GetPostByID(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, n, got.LikeCount)

	var rows int64
	require.NoError(t, db.Model(&dbmysql.Like{}).
		Where("post_id = ?", post.PostID).Count(&rows).Error)
	assert.EqualValues(t, n, rows)
}

func TestRepo_DuplicateLikeConflict(t *testing.T) {
	db := testDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	post := &dbmysql.Post{UserID: 1, MediaRef: "m1"}
	require.NoError(t, repo.CreatePost(ctx, post))

	_, err := repo.AddLike(ctx, post.PostID, 2)
	require.NoError(t, err)

	_, err = repo.AddLike(ctx, post.PostID, 2)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	removed, err := repo.RemoveLike(ctx, post.PostID, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveLike(ctx, post.PostID, 2)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := repo.GetPostByID(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
}

func TestRepo_RecountAll(t *testing.T) {
	db := testDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	post := &dbmysql.Post{UserID: 1, MediaRef: "m1"}
	require.NoError(t, repo.CreatePost(ctx, post))
	_, err := repo.AddLike(ctx, post.PostID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.AddComment(ctx, &dbmysql.Comment{
		PostID: post.PostID, UserID: 2, Content: "hi",
	}))

	// inject drift, then reconcile
	require.NoError(t, db.Model(&dbmysql.Post{}).
		Where("post_id = ?", post.PostID).
		Updates(map[string]interface{}{"like_count": 9, "comment_count": 9}).Error)

	require.NoError(t, repo.RecountAll(ctx))

	got, err := repo.GetPostByID(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)
	assert.Equal(t, 1, got.CommentCount)
}

func TestRepo_ActiveStoryWindow(t *testing.T) {
	db := testDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	story := &dbmysql.Story{UserID: 1, MediaRef: "m1", MediaKind: "image"}
	require.NoError(t, repo.CreateStory(ctx, story, DefaultStoryTTL))

	active, err := repo.ListActiveStories(ctx, 1, story.ExpiresAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, active, 1)

	active, err = repo.ListActiveStories(ctx, 1, story.ExpiresAt)
	require.NoError(t, err)
	assert.Empty(t, active)
}
