package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add 将视频加入观看历史，集合语义：已存在的 (user, video) 不重复插入
func (r *HistoryRepository) Add(userID, videoID int64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// ListByUser 用户观看历史（按观看时间倒序，含视频与作者信息）
func (r *HistoryRepository) ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error) {
	query := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.WatchHistory
	err := query.Order("watched_at DESC").Offset(skip).Limit(limit).
		Preload("Video.Owner").Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// DeleteByVideo 删除某视频的全部历史记录（视频级联删除用）
func (r *HistoryRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.WatchHistory{}).Error
}
