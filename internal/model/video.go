package model

import "time"

// Video 视频模型，IsPublished 为 false 时仅作者可见
type Video struct {
	ID              int64   `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID         int64   `gorm:"not null;index:idx_videos_owner_id;comment:视频作者ID" json:"owner_id"`
	Title           string  `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description     string  `gorm:"type:text;comment:视频描述" json:"description"`
	VideoURL        string  `gorm:"size:500;not null;comment:视频播放地址" json:"video_url"`
	VideoObject     string  `gorm:"size:500;not null;comment:视频对象名" json:"-"`
	ThumbnailURL    string  `gorm:"size:500;not null;comment:缩略图地址" json:"thumbnail_url"`
	ThumbnailObject string  `gorm:"size:500;not null;comment:缩略图对象名" json:"-"`
	Duration        float64 `gorm:"default:0;comment:视频时长（秒）" json:"duration"`
	Views           int64   `gorm:"default:0;comment:播放量" json:"views"`
	IsPublished     bool    `gorm:"not null;default:false;index:idx_videos_is_published;comment:是否已发布" json:"is_published"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Likes    []Like    `gorm:"foreignKey:VideoID" json:"likes,omitempty"`
	Comments []Comment `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
