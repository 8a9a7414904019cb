package feed

import (
	"context"
	"errors"
	"time"

	"aura/internal/dbmysql"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// --------- POSTS ---------
type Posts interface {
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	GetPostByID(ctx context.Context, id int64) (*dbmysql.Post, error)
	ListAllPosts(ctx context.Context) ([]dbmysql.Post, error)
	ListUserPosts(ctx context.Context, userID int64) ([]dbmysql.Post, error)
}

func (r *FeedRepository) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	post.CreatedAt = time.Now()
	post.LikeCount = 0
	post.CommentCount = 0
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *FeedRepository) GetPostByID(ctx context.Context, id int64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).First(&post, "post_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return &post, err
}

func (r *FeedRepository) ListAllPosts(ctx context.Context) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC, post_id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *FeedRepository) ListUserPosts(ctx context.Context, userID int64) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, post_id DESC").
		Find(&posts).Error
	return posts, err
}

// --------- INTERACTIONS ---------

// Interactions is the like/comment ledger. Every mutation also maintains the
// denormalized counter on the post inside the same transaction, so a ledger
// row and its counter adjustment are never observable apart.
type Interactions interface {
	AddLike(ctx context.Context, postID, userID int64) (*dbmysql.Like, error)
	RemoveLike(ctx context.Context, postID, userID int64) (bool, error)
	HasLike(ctx context.Context, postID, userID int64) (bool, error)
	AddComment(ctx context.Context, comment *dbmysql.Comment) error
	ListComments(ctx context.Context, postID int64) ([]dbmysql.Comment, error)
	RecountPost(ctx context.Context, postID int64) error
	RecountAll(ctx context.Context) error
}

// lockPost takes a FOR UPDATE row lock on the post, serializing concurrent
// like/comment mutations for the same post. Returns ErrPostNotFound if the
// post does not exist.
func lockPost(tx *gorm.DB, postID int64) error {
	var post dbmysql.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, "post_id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// AddLike inserts a like row and bumps like_count as one unit. Returns
// ErrAlreadyLiked if the (post, user) pair is already in the ledger.
func (r *FeedRepository) AddLike(ctx context.Context, postID, userID int64) (*dbmysql.Like, error) {
	like := &dbmysql.Like{PostID: postID, UserID: userID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, postID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&dbmysql.Like{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyLiked
		}

		like.CreatedAt = time.Now()
		if err := tx.Create(like).Error; err != nil {
			// the unique (post_id, user_id) index is the backstop in case
			// two transactions raced past the existence check
			if isDuplicateKey(err) {
				return ErrAlreadyLiked
			}
			return err
		}

		return tx.Model(&dbmysql.Post{}).
			Where("post_id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// RemoveLike deletes the like row and drops like_count as one unit. Removing
// a like that does not exist is a no-op and reports false.
func (r *FeedRepository) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	removed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, postID); err != nil {
			return err
		}

		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&dbmysql.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true

		// floor at zero to defend against residual drift
		return tx.Model(&dbmysql.Post{}).
			Where("post_id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
	})
	return removed, err
}

func (r *FeedRepository) HasLike(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddComment appends a comment row and bumps comment_count as one unit.
func (r *FeedRepository) AddComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, comment.PostID); err != nil {
			return err
		}

		comment.CreatedAt = time.Now()
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Model(&dbmysql.Post{}).
			Where("post_id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *FeedRepository) ListComments(ctx context.Context, postID int64) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, comment_id ASC").
		Find(&comments).Error
	return comments, err
}

// RecountPost recomputes both counters for one post from ledger cardinality.
func (r *FeedRepository) RecountPost(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPost(tx, postID); err != nil {
			return err
		}
		return tx.Exec(`
			UPDATE posts p SET
				p.like_count    = (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id),
				p.comment_count = (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id)
			WHERE p.post_id = ?`, postID).Error
	})
}

// RecountAll is the reconciliation pass: it rewrites every post's counters
// from the ledger. Meant for the background job and operational recovery,
// never the request path.
func (r *FeedRepository) RecountAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE posts p SET
			p.like_count    = (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id),
			p.comment_count = (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id)`).Error
}

// --------- STORIES ---------
type Stories interface {
	CreateStory(ctx context.Context, story *dbmysql.Story, ttl time.Duration) error
	ListActiveStories(ctx context.Context, userID int64, now time.Time) ([]dbmysql.Story, error)
	ListActiveStoriesForUsers(ctx context.Context, userIDs []int64, now time.Time) ([]dbmysql.Story, error)
}

func (r *FeedRepository) CreateStory(ctx context.Context, story *dbmysql.Story, ttl time.Duration) error {
	story.CreatedAt = time.Now()
	if story.ExpiresAt.IsZero() {
		story.ExpiresAt = StoryExpiresAt(story.CreatedAt, ttl)
	}
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *FeedRepository) ListActiveStories(ctx context.Context, userID int64, now time.Time) ([]dbmysql.Story, error) {
	var stories []dbmysql.Story
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC, story_id DESC").
		Find(&stories).Error
	return stories, err
}

func (r *FeedRepository) ListActiveStoriesForUsers(ctx context.Context, userIDs []int64, now time.Time) ([]dbmysql.Story, error) {
	if len(userIDs) == 0 {
		return []dbmysql.Story{}, nil
	}
	var stories []dbmysql.Story
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", userIDs, now).
		Order("created_at DESC, story_id DESC").
		Find(&stories).Error
	return stories, err
}
