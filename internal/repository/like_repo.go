package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// ExistsForVideo 查询用户是否点赞过该视频
func (r *LikeRepository) ExistsForVideo(userID, videoID int64) (bool, error) {
	return r.exists("video_id", userID, videoID)
}

// ExistsForComment 查询用户是否点赞过该评论
func (r *LikeRepository) ExistsForComment(userID, commentID int64) (bool, error) {
	return r.exists("comment_id", userID, commentID)
}

// ExistsForTweet 查询用户是否点赞过该动态
func (r *LikeRepository) ExistsForTweet(userID, tweetID int64) (bool, error) {
	return r.exists("tweet_id", userID, tweetID)
}

func (r *LikeRepository) exists(column string, userID, targetID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND "+column+" = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

// CreateForVideo 创建视频点赞
func (r *LikeRepository) CreateForVideo(userID, videoID int64) error {
	return r.db.Create(&model.Like{UserID: userID, VideoID: &videoID}).Error
}

// CreateForComment 创建评论点赞
func (r *LikeRepository) CreateForComment(userID, commentID int64) error {
	return r.db.Create(&model.Like{UserID: userID, CommentID: &commentID}).Error
}

// CreateForTweet 创建动态点赞
func (r *LikeRepository) CreateForTweet(userID, tweetID int64) error {
	return r.db.Create(&model.Like{UserID: userID, TweetID: &tweetID}).Error
}

// DeleteForVideo 删除视频点赞，返回是否删到了行
func (r *LikeRepository) DeleteForVideo(userID, videoID int64) (bool, error) {
	return r.deleteWhere("video_id", userID, videoID)
}

// DeleteForComment 删除评论点赞
func (r *LikeRepository) DeleteForComment(userID, commentID int64) (bool, error) {
	return r.deleteWhere("comment_id", userID, commentID)
}

// DeleteForTweet 删除动态点赞
func (r *LikeRepository) DeleteForTweet(userID, tweetID int64) (bool, error) {
	return r.deleteWhere("tweet_id", userID, tweetID)
}

func (r *LikeRepository) deleteWhere(column string, userID, targetID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND "+column+" = ?", userID, targetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByVideo 视频点赞数
func (r *LikeRepository) CountByVideo(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// CountByComment 评论点赞数
func (r *LikeRepository) CountByComment(commentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// ListLikedVideos 用户点赞的视频列表（按点赞时间倒序，含视频与作者信息）
func (r *LikeRepository) ListLikedVideos(userID int64, skip, limit int) ([]model.Like, int64, error) {
	query := r.db.Model(&model.Like{}).Where("user_id = ? AND video_id IS NOT NULL", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).
		Preload("Video.Owner").Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// DeleteByVideo 删除某视频的全部点赞（视频级联删除用）
func (r *LikeRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Like{}).Error
}

// DeleteByComment 删除某评论的全部点赞
func (r *LikeRepository) DeleteByComment(commentID int64) error {
	return r.db.Where("comment_id = ?", commentID).Delete(&model.Like{}).Error
}

// CountOnVideosOfOwner 作者名下所有视频收到的点赞总数（频道统计用）
func (r *LikeRepository) CountOnVideosOfOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
