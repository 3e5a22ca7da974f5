package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量获取视频（含作者信息），顺序由调用方自行恢复
func (r *VideoRepository) GetByIDs(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 物理删除视频行（点赞/评论/历史级联由 service 层处理）
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TogglePublish 翻转发布状态，返回翻转后的值
func (r *VideoRepository) TogglePublish(id int64) (bool, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("is_published", gorm.Expr("NOT is_published"))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, gorm.ErrRecordNotFound
	}
	video, err := r.GetByID(id)
	if err != nil {
		return false, err
	}
	return video.IsPublished, nil
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// List 视频列表查询（分页、搜索、排序），publishedOnly 为真时只返回已发布视频
func (r *VideoRepository) List(skip, limit int, ownerID *int64, publishedOnly bool, search *string, sortBy, sortType string) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}
	if search != nil && *search != "" {
		like := "%" + *search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch sortBy {
	case "views", "duration", "created_at":
		dir := "DESC"
		if sortType == "asc" {
			dir = "ASC"
		}
		order = sortBy + " " + dir
	}

	var videos []model.Video
	err := query.Order(order).Offset(skip).Limit(limit).Preload("Owner").Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// CountByOwner 作者的视频总数
func (r *VideoRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// SumViewsByOwner 作者所有视频的播放量总和
func (r *VideoRepository) SumViewsByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").Scan(&total).Error
	return total, err
}
