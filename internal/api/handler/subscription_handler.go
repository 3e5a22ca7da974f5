package handler

import (
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 订阅开关
// @Summary 订阅/退订频道
// @Tags 订阅
// @Produce json
// @Param id path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.SubscribeStatus} "切换成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己的频道"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Security BearerAuth
// @Router /subscriptions/toggle/{id} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.subscriptionService.Toggle(userID, channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "订阅状态已切换", status)
}

// GetSubscribers 频道订阅者列表
// @Summary 频道的订阅者列表
// @Tags 订阅
// @Produce json
// @Param id path int true "频道（用户）ID"
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.SubscriptionListData} "获取成功"
// @Security BearerAuth
// @Router /subscriptions/{id}/subscribers [get]
func (h *SubscriptionHandler) GetSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	page, limit := parsePagination(c)
	data, err := h.subscriptionService.GetSubscribers(channelID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取订阅者列表成功", data)
}

// GetSubscribedChannels 当前用户订阅的频道
// @Summary 当前用户订阅的频道列表
// @Tags 订阅
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.SubscriptionListData} "获取成功"
// @Security BearerAuth
// @Router /subscriptions/channels [get]
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.subscriptionService.GetSubscribedChannels(userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取订阅频道列表成功", data)
}
