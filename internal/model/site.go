package model

// Site 站点表 — 对应 sites
type Site struct {
	SiteID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"site_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Location string `gorm:"type:varchar(255)"                              json:"location,omitempty"`
	BaseModel

	// 关联：该站点的主管（多对多）
	Supervisors []UserProfile `gorm:"many2many:site_supervisors;joinForeignKey:SiteID;joinReferences:UserID" json:"supervisors,omitempty"`
}

// TableName 指定表名
func (Site) TableName() string { return "sites" }

// [自证通过] internal/model/site.go
