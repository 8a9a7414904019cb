package dbmysql

import "time"

// Story is visible until ExpiresAt (strictly before). Expired rows stay in
// the table; retention is not this layer's concern.
type Story struct {
	StoryID   int64     `gorm:"primaryKey;autoIncrement;column:story_id" json:"story_id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	MediaRef  string    `gorm:"column:media_ref;size:64;not null" json:"media_ref"`
	MediaKind string    `gorm:"type:ENUM('image','video');column:media_kind" json:"media_kind"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`
}

func (Story) TableName() string {
	return "stories"
}
