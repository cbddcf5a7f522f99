package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	AgencyEmail *string   `json:"agency_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Official scopes a citizen to one category. UserID is unique: a citizen
// is an official of at most one category.
type Official struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User       *Citizen  `gorm:"foreignKey:UserID" json:"-"`
	CategoryID string    `gorm:"type:uuid;index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Title      string    `gorm:"not null" json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

func (o *Official) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type Admin struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User      *Citizen  `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AgencyEmail *string `json:"agency_email"`
}

type AddOfficialRequest struct {
	Email      string `json:"email"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
}

// OfficialView is an official as listed to admins.
type OfficialView struct {
	Official
	Email        string `json:"email"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name"`
}

type AdminView struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
