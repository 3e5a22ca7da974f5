package service

import (
	"errors"

	"clipstream/internal/api/dto"
	"clipstream/internal/apperror"
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type CommentService struct {
	comments CommentStore
	videos   VideoStore
	likes    LikeStore
}

func NewCommentService(comments CommentStore, videos VideoStore, likes LikeStore) *CommentService {
	return &CommentService{comments: comments, videos: videos, likes: likes}
}

// Create 在视频下发表评论，视频对请求者不可见时返回不存在
func (s *CommentService) Create(userID, videoID int64, req *dto.CreateCommentRequest) (*dto.CommentInfo, error) {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("视频不存在")
		}
		return nil, apperror.Internal("评论发表失败", err)
	}
	if !video.IsPublished && video.OwnerID != userID {
		return nil, apperror.NotFound("视频不存在")
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: userID, Content: req.Content}
	if err := s.comments.Create(comment); err != nil {
		return nil, apperror.Internal("评论发表失败", err)
	}

	info := s.toCommentInfo(comment, userID)
	return &info, nil
}

// Update 修改评论内容，仅评论作者可操作
func (s *CommentService) Update(userID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentInfo, error) {
	if _, err := s.ownedComment(commentID, userID); err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(commentID, req.Content)
	if err != nil {
		return nil, apperror.Internal("评论更新失败", err)
	}

	info := s.toCommentInfo(updated, userID)
	return &info, nil
}

// Delete 删除评论及其上的点赞，仅评论作者可操作
func (s *CommentService) Delete(userID, commentID int64) error {
	if _, err := s.ownedComment(commentID, userID); err != nil {
		return err
	}

	if err := s.likes.DeleteByComment(commentID); err != nil {
		return apperror.Internal("评论删除失败", err)
	}
	if err := s.comments.Delete(commentID); err != nil {
		return apperror.Internal("评论删除失败", err)
	}
	return nil
}

// ListByVideo 视频的评论列表，按发表时间倒序，like 字段相对 viewerID 计算
func (s *CommentService) ListByVideo(videoID, viewerID int64, page, limit int) (*dto.CommentListData, error) {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("视频不存在")
		}
		return nil, apperror.Internal("获取评论列表失败", err)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("视频不存在")
	}

	skip := (page - 1) * limit
	comments, total, err := s.comments.ListByVideo(videoID, skip, limit)
	if err != nil {
		return nil, apperror.Internal("获取评论列表失败", err)
	}

	data := &dto.CommentListData{
		Comments:   make([]dto.CommentInfo, 0, len(comments)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range comments {
		data.Comments = append(data.Comments, s.toCommentInfo(&comments[i], viewerID))
	}
	return data, nil
}

func (s *CommentService) ownedComment(commentID, userID int64) (*model.Comment, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("评论不存在")
		}
		return nil, apperror.Internal("获取评论失败", err)
	}
	if comment.OwnerID != userID {
		return nil, apperror.Forbidden("无权操作他人的评论")
	}
	return comment, nil
}

func (s *CommentService) toCommentInfo(comment *model.Comment, viewerID int64) dto.CommentInfo {
	info := dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Owner.ID > 0 {
		info.Owner = &dto.OwnerBrief{
			ID:        comment.Owner.ID,
			Username:  comment.Owner.Username,
			FullName:  comment.Owner.FullName,
			AvatarURL: comment.Owner.AvatarURL,
		}
	}
	if count, err := s.likes.CountByComment(comment.ID); err == nil {
		info.LikesCount = count
	}
	if viewerID > 0 {
		if liked, err := s.likes.ExistsForComment(viewerID, comment.ID); err == nil {
			info.IsLiked = liked
		}
	}
	return info
}
