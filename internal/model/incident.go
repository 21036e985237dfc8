package model

import "time"

// IncidentReport 事件报告表 — 对应 incident_reports
// 由当班保安创建（状态强制 pending，作者强制本人）；
// 状态仅能通过主管的专用接口流转；随班次/用户级联删除
type IncidentReport struct {
	IncidentID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"incident_id"`
	ShiftID       string    `gorm:"type:uuid;not null"                             json:"shift_id"`
	UserID        string    `gorm:"type:uuid;not null"                             json:"user_id"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"` // 创建后不可变
	Severity      string    `gorm:"type:varchar(20);not null"                      json:"severity"`   // low | medium | high
	Description   string    `gorm:"type:text;not null"                             json:"description"`
	AttachmentURL string    `gorm:"type:varchar(500)"                              json:"attachment_url,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | reviewed | resolved

	// 关联
	Shift *WorkShift   `gorm:"foreignKey:ShiftID;references:ShiftID;constraint:OnDelete:CASCADE" json:"shift,omitempty"`
	User  *UserProfile `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"   json:"user,omitempty"`
}

// TableName 指定表名
func (IncidentReport) TableName() string { return "incident_reports" }

// [自证通过] internal/model/incident.go
