package dbmysql

import (
	"time"
)

type User struct {
	UserID       int64     `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	Handle       string    `gorm:"column:handle;uniqueIndex;size:50;not null" json:"handle"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Status       string    `gorm:"column:status;type:enum('active','banned','deleted');default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
