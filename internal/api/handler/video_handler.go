package handler

import (
	"clipstream/internal/api/dto"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Publish 发布视频
// @Summary 上传并创建视频
// @Description 视频与缩略图必传，新视频默认未发布状态
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param video formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Security BearerAuth
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoPath, cleanVideo, err := saveUploadedFile(c, "video")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanVideo()

	thumbPath, cleanThumb, err := saveUploadedFile(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanThumb()

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.videoService.Publish(c.Request.Context(), userID, &req, videoPath, thumbPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "视频发布成功", info)
}

// GetDetail 视频详情
// @Summary 视频详情
// @Description 访问会使播放量 +1 并写入观看历史；未发布视频仅作者可见
// @Tags 视频
// @Produce json
// @Param id path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Security BearerAuth
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	detail, err := h.videoService.GetDetail(c.Request.Context(), videoID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取视频详情成功", detail)
}

// Update 更新视频
// @Summary 更新视频标题/描述/缩略图
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "视频 ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "新缩略图"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的视频"
// @Security BearerAuth
// @Router /videos/{id} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	thumbPath, cleanup, err := saveUploadedFile(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.videoService.Update(c.Request.Context(), videoID, userID, &req, thumbPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频更新成功", info)
}

// Delete 删除视频
// @Summary 删除视频及其点赞、评论、观看历史与媒体文件
// @Tags 视频
// @Produce json
// @Param id path int true "视频 ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的视频"
// @Security BearerAuth
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.videoService.Delete(c.Request.Context(), videoID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频删除成功", nil)
}

// TogglePublish 切换发布状态
// @Summary 切换视频发布状态
// @Tags 视频
// @Produce json
// @Param id path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.PublishStatus} "切换成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的视频"
// @Security BearerAuth
// @Router /videos/{id}/toggle-publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.videoService.TogglePublish(c.Request.Context(), videoID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "发布状态已切换", status)
}

// List 视频列表
// @Summary 视频列表
// @Description 支持搜索词、按作者过滤与排序；只返回已发布视频，作者查自己时除外
// @Tags 视频
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Param query query string false "搜索词"
// @Param owner_id query int false "按作者过滤"
// @Param sort_by query string false "排序字段：views/duration/created_at"
// @Param sort_type query string false "asc/desc"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Security BearerAuth
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	req := &dto.ListVideosRequest{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sort_by"),
		SortType: c.Query("sort_type"),
	}
	if ownerID, ok := parseQueryID(c, "owner_id"); ok {
		req.OwnerID = &ownerID
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	data, err := h.videoService.List(c.Request.Context(), req, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取视频列表成功", data)
}
