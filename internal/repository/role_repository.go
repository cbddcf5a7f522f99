package repository

import (
	"context"

	"complaint-portal/internal/model"

	"gorm.io/gorm"
)

// OfficialRepository stores official appointments. The unique index on
// user_id is the authority on one appointment per user.
type OfficialRepository struct {
	db *gorm.DB
}

func NewOfficialRepository(db *gorm.DB) *OfficialRepository {
	return &OfficialRepository{db: db}
}

func (r *OfficialRepository) Create(ctx context.Context, official *model.Official) error {
	return translate(r.db.WithContext(ctx).Create(official).Error)
}

// FindByUserID returns the appointment with its category loaded.
func (r *OfficialRepository) FindByUserID(ctx context.Context, userID string) (*model.Official, error) {
	var official model.Official
	err := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID).First(&official).Error
	if err != nil {
		return nil, translate(err)
	}
	return &official, nil
}

func (r *OfficialRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Official{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *OfficialRepository) FindAll(ctx context.Context) ([]model.OfficialView, error) {
	var officials []model.Official
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Order("created_at ASC").
		Find(&officials).Error
	if err != nil {
		return nil, translate(err)
	}

	views := make([]model.OfficialView, 0, len(officials))
	for _, o := range officials {
		v := model.OfficialView{Official: o}
		if o.User != nil {
			v.Email = o.User.Email
			v.Name = o.User.Name
		}
		if o.Category != nil {
			v.CategoryName = o.Category.Name
		}
		views = append(views, v)
	}
	return views, nil
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return translate(r.db.WithContext(ctx).Create(admin).Error)
}

func (r *AdminRepository) DeleteByUserID(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Admin{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *AdminRepository) FindAll(ctx context.Context) ([]model.AdminView, error) {
	var admins []model.Admin
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, translate(err)
	}
	views := make([]model.AdminView, 0, len(admins))
	for _, a := range admins {
		v := model.AdminView{UserID: a.UserID}
		if a.User != nil {
			v.Email = a.User.Email
			v.Name = a.User.Name
		}
		views = append(views, v)
	}
	return views, nil
}
