package feed

import "errors"

// Sentinel errors for the ledger. They are returned unwrapped or wrapped with
// %w so callers can test them with errors.Is; the HTTP layer maps them to
// status codes.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")

	// ErrAlreadyLiked is the ledger's conflict on a duplicate (post, user)
	// like. LikePost absorbs it — liking twice is a no-op for callers.
	ErrAlreadyLiked = errors.New("post already liked by user")

	ErrEmptyContent = errors.New("comment content must not be empty")
	ErrMissingMedia = errors.New("media reference is required")
	ErrBadMediaKind = errors.New("media kind must be image or video")
)
