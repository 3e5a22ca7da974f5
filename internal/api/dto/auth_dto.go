package dto

// RegisterRequest 注册请求（multipart/form-data，头像/封面文件由 handler 处理）
type RegisterRequest struct {
	Username string `form:"username" binding:"required,min=1,max=255"`
	Email    string `form:"email" binding:"required,email,max=255"`
	FullName string `form:"full_name" binding:"required,min=1,max=255"`
	Password string `form:"password" binding:"required,min=6,max=255"`
}

// LoginRequest 登录请求，用户名与邮箱二选一
type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=255"`
	Email    string `json:"email" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// RefreshRequest 刷新令牌请求体（非浏览器客户端使用，浏览器走 Cookie）
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"omitempty"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=6,max=255"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=255"`
}

// TokenPair 访问令牌 + 刷新令牌（Cookie 之外的双通道下发）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginData 登录成功返回的数据
type LoginData struct {
	User UserInfo `json:"user"`
	TokenPair
}
