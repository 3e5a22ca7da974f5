package handler

import (
	"net/http"

	"clipstream/internal/api/dto"
	"clipstream/internal/api/middleware"
	"clipstream/internal/api/response"
	"clipstream/internal/service"
	"clipstream/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      *token.Manager
}

func NewAuthHandler(authService *service.AuthService, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号，头像必传、封面可选
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param full_name formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param cover formData file false "封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已被注册"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatarPath, cleanAvatar, err := saveUploadedFile(c, "avatar")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanAvatar()

	coverPath, cleanCover, err := saveUploadedFile(c, "cover")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cleanCover()

	userInfo, err := h.authService.Register(c.Request.Context(), &req, avatarPath, coverPath)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", userInfo)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱 + 密码登录，签发令牌对并写入 Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData} "登录成功"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, data.AccessToken, data.RefreshToken)
	response.OK(c, "登录成功", data)
}

// Logout 用户登出
// @Summary 用户登出
// @Description 清除存储的刷新令牌并删除 Cookie
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response "登出成功"
// @Security BearerAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.Logout(userID); err != nil {
		response.Error(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.OK(c, "登出成功", nil)
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Description 用刷新令牌换取新令牌对（单会话轮换，旧刷新令牌随即失效）
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest false "刷新令牌（浏览器客户端走 Cookie 可不传）"
// @Success 200 {object} response.Response{data=dto.TokenPair} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌无效或已被轮换淘汰"
// @Router /users/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(middleware.RefreshTokenCookie)
	if presented == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.authService.Refresh(presented)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	response.OK(c, "令牌刷新成功", pair)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.ErrorResponse "原密码错误"
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.authService.ChangePassword(userID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "密码修改成功", nil)
}

// setAuthCookies 下发 HttpOnly + Secure + SameSite=Strict 的令牌 Cookie
func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(h.tokens.AccessTTL().Seconds()), "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, int(h.tokens.RefreshTTL().Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", true, true)
}
