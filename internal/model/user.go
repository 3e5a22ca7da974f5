package model

import "time"

// User 用户模型，RefreshToken 只保留最近一次签发的刷新令牌（单会话轮换）
type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username     string  `gorm:"size:255;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email        string  `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	FullName     string  `gorm:"size:255;not null;comment:昵称" json:"full_name"`
	Password     string  `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	AvatarURL    string  `gorm:"size:500;comment:头像地址" json:"avatar_url"`
	AvatarObject string  `gorm:"size:500;comment:头像对象名" json:"-"`
	CoverURL     string  `gorm:"size:500;comment:封面地址" json:"cover_url"`
	CoverObject  string  `gorm:"size:500;comment:封面对象名" json:"-"`
	RefreshToken *string `gorm:"size:1024;comment:当前刷新令牌" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos []Video `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Likes  []Like  `gorm:"foreignKey:UserID" json:"likes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
