package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Citizen is a registered portal user. Officials and admins are citizens with
// an extra Official or Admin record.
type Citizen struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"column:password;not null" json:"-"`
	Phone        *string     `json:"phone,omitempty"`
	Address      *string     `json:"address,omitempty"`
	Complaints   []Complaint `gorm:"foreignKey:CitizenID;constraint:OnDelete:CASCADE" json:"complaints,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (c *Citizen) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Citizen *Citizen `json:"citizen"`
	Token   string   `json:"token"`
}

// CitizenProfile always lists complaints, even when there are none.
type CitizenProfile struct {
	*Citizen
	Complaints []Complaint `json:"complaints"`
}
