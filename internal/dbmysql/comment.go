package dbmysql

import "time"

// Comment is append-only; rows are never updated or deleted.
type Comment struct {
	CommentID int64     `gorm:"primaryKey;autoIncrement;column:comment_id" json:"comment_id"`
	PostID    int64     `gorm:"column:post_id;index" json:"post_id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
