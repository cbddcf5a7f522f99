package repository

import (
	"context"

	"complaint-portal/internal/model"

	"gorm.io/gorm"
)

type CitizenRepository struct {
	db *gorm.DB
}

func NewCitizenRepository(db *gorm.DB) *CitizenRepository {
	return &CitizenRepository{db: db}
}

// Create relies on the unique email index; a second insert of the same
// email comes back as model.ErrDuplicate.
func (r *CitizenRepository) Create(ctx context.Context, citizen *model.Citizen) error {
	return translate(r.db.WithContext(ctx).Create(citizen).Error)
}

func (r *CitizenRepository) FindByEmail(ctx context.Context, email string) (*model.Citizen, error) {
	var citizen model.Citizen
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&citizen).Error; err != nil {
		return nil, translate(err)
	}
	return &citizen, nil
}

func (r *CitizenRepository) FindByID(ctx context.Context, id string) (*model.Citizen, error) {
	var citizen model.Citizen
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&citizen).Error; err != nil {
		return nil, translate(err)
	}
	return &citizen, nil
}

func (r *CitizenRepository) FindProfile(ctx context.Context, id string) (*model.Citizen, error) {
	var citizen model.Citizen
	err := r.db.WithContext(ctx).
		Preload("Complaints", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&citizen).Error
	if err != nil {
		return nil, translate(err)
	}
	return &citizen, nil
}

func (r *CitizenRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Citizen{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
