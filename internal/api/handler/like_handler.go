package handler

import (
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideoLike 视频点赞开关
// @Summary 视频点赞/取消点赞
// @Tags 点赞
// @Produce json
// @Param id path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Security BearerAuth
// @Router /likes/toggle/video/{id} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.likeService.ToggleVideoLike(userID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "点赞状态已切换", status)
}

// ToggleCommentLike 评论点赞开关
// @Summary 评论点赞/取消点赞
// @Tags 点赞
// @Produce json
// @Param id path int true "评论 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Security BearerAuth
// @Router /likes/toggle/comment/{id} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.likeService.ToggleCommentLike(userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "点赞状态已切换", status)
}

// ToggleTweetLike 动态点赞开关
// @Summary 动态点赞/取消点赞
// @Tags 点赞
// @Produce json
// @Param id path int true "动态 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Security BearerAuth
// @Router /likes/toggle/tweet/{id} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.likeService.ToggleTweetLike(userID, tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "点赞状态已切换", status)
}

// GetLikedVideos 点赞过的视频
// @Summary 当前用户点赞过的视频列表
// @Tags 点赞
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Security BearerAuth
// @Router /likes/videos [get]
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.likeService.GetLikedVideos(userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取点赞视频成功", data)
}
