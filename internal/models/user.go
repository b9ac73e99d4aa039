package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（认证由外层接入，核心仅引用用户身份）
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`          // 主键
	Email     string         `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	Name      string         `json:"name"`                          // 昵称
	CreatedAt time.Time      `json:"created_at"`                    // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}