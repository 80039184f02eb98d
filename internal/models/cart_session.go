package models

import (
	"time"
)

// CartSession 会话与远端购物车 ID 的映射
type CartSession struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_key"`
	CartID     string    `gorm:"type:varchar(255);not null" json:"cart_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (CartSession) TableName() string {
	return "cart_sessions"
}
