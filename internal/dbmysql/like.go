package dbmysql

import "time"

// Like rows are unique per (post, user) — the index backs the idempotent
// like toggle and catches duplicates even under concurrent inserts.
type Like struct {
	LikeID    int64     `gorm:"primaryKey;autoIncrement;column:like_id" json:"like_id"`
	PostID    int64     `gorm:"column:post_id;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
