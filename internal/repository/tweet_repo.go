package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// GetByID 根据 ID 获取动态
func (r *TweetRepository) GetByID(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Create 创建动态
func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

// UpdateContent 更新动态内容
func (r *TweetRepository) UpdateContent(id int64, content string) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除动态
func (r *TweetRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Tweet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner 用户的动态列表（按时间倒序）
func (r *TweetRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error) {
	query := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []model.Tweet
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}
