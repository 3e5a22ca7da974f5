package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id int64, content string) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除评论
func (r *CommentRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByVideo 删除某视频的全部评论（视频级联删除用）
func (r *CommentRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}

// ListByVideo 视频的评论列表（按时间倒序，含评论者信息）
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Preload("Owner").Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
