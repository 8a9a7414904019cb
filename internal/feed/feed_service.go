package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aura/internal/dbmysql"
)

// UserDirectory resolves opaque user identifiers. Identity and credentials
// live behind it; the ledger only ever sees ids that the directory vouches
// for.
type UserDirectory interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type FeedUsecase interface {
	CreatePost(ctx context.Context, userID int64, caption, mediaRef string) (*dbmysql.Post, error)
	GetFeed(ctx context.Context) ([]dbmysql.Post, error)
	GetUserPosts(ctx context.Context, userID int64) ([]dbmysql.Post, error)

	LikePost(ctx context.Context, postID, userID int64) error
	UnlikePost(ctx context.Context, postID, userID int64) error

	AddComment(ctx context.Context, postID, userID int64, content string) (*dbmysql.Comment, error)
	GetComments(ctx context.Context, postID int64) ([]dbmysql.Comment, error)

	CreateStory(ctx context.Context, userID int64, mediaRef, mediaKind string) (*dbmysql.Story, error)
	GetActiveStories(ctx context.Context, userID int64, now time.Time) ([]dbmysql.Story, error)
	GetFeedStories(ctx context.Context, followingIDs []int64, now time.Time) ([]dbmysql.Story, error)

	ReconcileCounts(ctx context.Context) error
}

type FeedService struct {
	posts        Posts
	interactions Interactions
	stories      Stories
	users        UserDirectory
}

func NewFeedService(p Posts, i Interactions, s Stories, u UserDirectory) *FeedService {
	return &FeedService{
		posts:        p,
		interactions: i,
		stories:      s,
		users:        u,
	}
}

func (s *FeedService) resolveUser(ctx context.Context, userID int64) error {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// --------- POSTS ---------

func (s *FeedService) CreatePost(ctx context.Context, userID int64, caption, mediaRef string) (*dbmysql.Post, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if mediaRef == "" {
		return nil, ErrMissingMedia
	}

	post := &dbmysql.Post{
		UserID:   userID,
		MediaRef: mediaRef,
	}
	if caption != "" {
		post.Caption = &caption
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetFeed returns every post, newest first. No personalization — the feed is
// a plain reverse-chronological listing.
func (s *FeedService) GetFeed(ctx context.Context) ([]dbmysql.Post, error) {
	return s.posts.ListAllPosts(ctx)
}

func (s *FeedService) GetUserPosts(ctx context.Context, userID int64) ([]dbmysql.Post, error) {
	return s.posts.ListUserPosts(ctx, userID)
}

// --------- LIKES ---------

// LikePost is idempotent: liking a post twice leaves one like row and a
// counter bumped once. The ledger's duplicate conflict is absorbed here.
func (s *FeedService) LikePost(ctx context.Context, postID, userID int64) error {
	if err := s.resolveUser(ctx, userID); err != nil {
		return err
	}

	_, err := s.interactions.AddLike(ctx, postID, userID)
	if errors.Is(err, ErrAlreadyLiked) {
		return nil
	}
	return err
}

// UnlikePost is idempotent: unliking a post the user never liked is a no-op.
func (s *FeedService) UnlikePost(ctx context.Context, postID, userID int64) error {
	if err := s.resolveUser(ctx, userID); err != nil {
		return err
	}

	_, err := s.interactions.RemoveLike(ctx, postID, userID)
	return err
}

// --------- COMMENTS ---------

func (s *FeedService) AddComment(ctx context.Context, postID, userID int64, content string) (*dbmysql.Comment, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	comment := &dbmysql.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.interactions.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *FeedService) GetComments(ctx context.Context, postID int64) ([]dbmysql.Comment, error) {
	return s.interactions.ListComments(ctx, postID)
}

// --------- STORIES ---------

func (s *FeedService) CreateStory(ctx context.Context, userID int64, mediaRef, mediaKind string) (*dbmysql.Story, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if mediaRef == "" {
		return nil, ErrMissingMedia
	}
	if !ValidMediaKind(mediaKind) {
		return nil, ErrBadMediaKind
	}

	story := &dbmysql.Story{
		UserID:    userID,
		MediaRef:  mediaRef,
		MediaKind: mediaKind,
	}
	if err := s.stories.CreateStory(ctx, story, DefaultStoryTTL); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *FeedService) GetActiveStories(ctx context.Context, userID int64, now time.Time) ([]dbmysql.Story, error) {
	return s.stories.ListActiveStories(ctx, userID, now)
}

// GetFeedStories returns active stories from the given set of followed users.
// There is no follow-graph collaborator yet, so the HTTP layer always calls
// this with an empty set and gets an empty result.
func (s *FeedService) GetFeedStories(ctx context.Context, followingIDs []int64, now time.Time) ([]dbmysql.Story, error) {
	return s.stories.ListActiveStoriesForUsers(ctx, followingIDs, now)
}

// --------- MAINTENANCE ---------

// ReconcileCounts rewrites every post's like/comment counters from the ledger.
// The ledger rows are the source of truth; the counters are a cache of them.
func (s *FeedService) ReconcileCounts(ctx context.Context) error {
	return s.interactions.RecountAll(ctx)
}
