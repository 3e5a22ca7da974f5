package model

import "time"

// Like 点赞模型：行的存在即点赞状态，VideoID/CommentID/TweetID 三者恰有一个非空
type Like struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    int64  `gorm:"not null;index:idx_likes_user_id;uniqueIndex:uq_like_user_video;uniqueIndex:uq_like_user_comment;uniqueIndex:uq_like_user_tweet;comment:点赞用户ID" json:"user_id"`
	VideoID   *int64 `gorm:"index:idx_likes_video_id;uniqueIndex:uq_like_user_video;comment:被点赞视频ID" json:"video_id"`
	CommentID *int64 `gorm:"index:idx_likes_comment_id;uniqueIndex:uq_like_user_comment;comment:被点赞评论ID" json:"comment_id"`
	TweetID   *int64 `gorm:"index:idx_likes_tweet_id;uniqueIndex:uq_like_user_tweet;comment:被点赞动态ID" json:"tweet_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_likes_created_at;comment:点赞时间" json:"created_at"`

	// 关联关系
	User  User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
