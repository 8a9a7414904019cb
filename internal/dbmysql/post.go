package dbmysql

import (
	"time"
)

// Post is a feed post. LikeCount and CommentCount are denormalized from the
// likes/comments tables and are only ever written inside the repository
// transactions that also touch those tables.
type Post struct {
	PostID       int64     `gorm:"primaryKey;autoIncrement;column:post_id" json:"post_id"`
	UserID       int64     `gorm:"column:user_id;index" json:"user_id"`
	Caption      *string   `gorm:"column:caption;type:text" json:"caption,omitempty"`
	MediaRef     string    `gorm:"column:media_ref;size:64;not null" json:"media_ref"`
	LikeCount    int       `gorm:"column:like_count;not null;default:0" json:"like_count"`
	CommentCount int       `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}
