package handler

import (
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	statsService *service.StatsService
}

func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// GetChannelStats 频道统计
// @Summary 当前用户的频道仪表盘
// @Description 视频数、播放量、订阅者与点赞总量，附最近 30 天的按日互动曲线
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} response.Response{data=dto.ChannelStatsData} "获取成功"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.statsService.GetChannelStats(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取频道统计成功", data)
}
