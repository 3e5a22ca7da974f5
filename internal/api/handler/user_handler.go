package handler

import (
	"clipstream/internal/api/dto"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrent 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Security BearerAuth
// @Router /users/current [get]
func (h *UserHandler) GetCurrent(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.GetCurrent(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取用户信息成功", info)
}

// UpdateAccount 更新账号信息
// @Summary 更新昵称或邮箱
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.UpdateAccountRequest true "待更新字段"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 409 {object} response.ErrorResponse "邮箱已被其他账号使用"
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.UpdateAccount(userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "账号信息更新成功", info)
}

// UpdateAvatar 更换头像
// @Summary 更换头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "头像文件"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Security BearerAuth
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar")
}

// UpdateCover 更换封面
// @Summary 更换封面
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param cover formData file true "封面文件"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Security BearerAuth
// @Router /users/cover [patch]
func (h *UserHandler) UpdateCover(c *gin.Context) {
	h.updateImage(c, "cover")
}

func (h *UserHandler) updateImage(c *gin.Context, field string) {
	path, cleanup, err := saveUploadedFile(c, field)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanup()

	userID, _ := middleware.GetCurrentUserID(c)

	var info *dto.UserInfo
	if field == "avatar" {
		info, err = h.userService.UpdateAvatar(c.Request.Context(), userID, path)
	} else {
		info, err = h.userService.UpdateCover(c.Request.Context(), userID, path)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "图片更新成功", info)
}

// GetChannelProfile 频道主页
// @Summary 按用户名查看频道主页
// @Description 订阅计数与 is_subscribed 相对当前请求者计算
// @Tags 用户
// @Produce json
// @Param username path string true "频道用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Security BearerAuth
// @Router /users/channel/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	viewerID, _ := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetChannelProfile(c.Param("username"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取频道信息成功", profile)
}

// GetWatchHistory 观看历史
// @Summary 当前用户的观看历史
// @Tags 用户
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Success 200 {object} response.Response{data=dto.HistoryListData} "获取成功"
// @Security BearerAuth
// @Router /users/history [get]
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.userService.GetWatchHistory(userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取观看历史成功", data)
}
