package dto

import "time"

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// UpdateCommentRequest 更新评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo 评论信息，like 字段相对请求者计算
type CommentInfo struct {
	ID         int64       `json:"id"`
	VideoID    int64       `json:"video_id"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	Owner      *OwnerBrief `json:"owner,omitempty"`
	LikesCount int64       `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"total_pages"`
}
