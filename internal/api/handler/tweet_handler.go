package handler

import (
	"clipstream/internal/api/dto"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Param request body dto.TweetRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo} "发布成功"
// @Security BearerAuth
// @Router /tweets [post]
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.tweetService.Create(userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "动态发布成功", info)
}

// Update 修改动态
// @Summary 修改动态内容
// @Tags 动态
// @Accept json
// @Produce json
// @Param id path int true "动态 ID"
// @Param request body dto.TweetRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo} "修改成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的动态"
// @Security BearerAuth
// @Router /tweets/{id} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.tweetService.Update(userID, tweetID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "动态更新成功", info)
}

// Delete 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Param id path int true "动态 ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "无权操作他人的动态"
// @Security BearerAuth
// @Router /tweets/{id} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.tweetService.Delete(userID, tweetID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "动态删除成功", nil)
}

// ListByUser 用户动态列表
// @Summary 某用户的动态列表
// @Tags 动态
// @Produce json
// @Param id path int true "用户 ID"
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.TweetListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Security BearerAuth
// @Router /tweets/user/{id} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	page, limit := parsePagination(c)
	data, err := h.tweetService.ListByUser(ownerID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取动态列表成功", data)
}
