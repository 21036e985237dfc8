package dto

// ── 站点模块 DTO ──

// CreateSiteRequest 创建站点请求
type CreateSiteRequest struct {
	Name          string   `json:"name"           binding:"required,min=2,max=100"`
	Location      string   `json:"location"       binding:"omitempty,max=255"`
	SupervisorIDs []string `json:"supervisor_ids" binding:"omitempty,dive,uuid"`
}

// UpdateSiteRequest 更新站点请求
type UpdateSiteRequest struct {
	Name          *string   `json:"name"           binding:"omitempty,min=2,max=100"`
	Location      *string   `json:"location"       binding:"omitempty,max=255"`
	SupervisorIDs *[]string `json:"supervisor_ids" binding:"omitempty,dive,uuid"`
}

// SiteResponse 站点信息响应
type SiteResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location,omitempty"`
	Supervisors []UserBrief `json:"supervisors"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// [自证通过] internal/dto/site.go
