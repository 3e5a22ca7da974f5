package handler

import (
	"clipstream/internal/api/dto"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 在视频下发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Param id path int true "视频 ID"
// @Param request body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "发表成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Security BearerAuth
// @Router /comments/video/{id} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.commentService.Create(userID, videoID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "评论发表成功", info)
}

// Update 修改评论
// @Summary 修改评论内容
// @Tags 评论
// @Accept json
// @Produce json
// @Param id path int true "评论 ID"
// @Param request body dto.UpdateCommentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo} "修改成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的评论"
// @Security BearerAuth
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.commentService.Update(userID, commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "评论更新成功", info)
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Param id path int true "评论 ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的评论"
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.commentService.Delete(userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "评论删除成功", nil)
}

// ListByVideo 评论列表
// @Summary 视频的评论列表
// @Tags 评论
// @Produce json
// @Param id path int true "视频 ID"
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Security BearerAuth
// @Router /comments/video/{id} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(videoID, viewerID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取评论列表成功", data)
}
