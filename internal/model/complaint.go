package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	StatusSubmitted ComplaintStatus = "Submitted"
	StatusInReview  ComplaintStatus = "InReview"
	StatusResolved  ComplaintStatus = "Resolved"
)

// ComplaintStatuses is the closed set accepted by the status endpoint.
var ComplaintStatuses = []string{
	string(StatusSubmitted),
	string(StatusInReview),
	string(StatusResolved),
}

type Complaint struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Category       string          `gorm:"index;not null" json:"category"`
	Address        *string         `json:"address,omitempty"`
	Status         ComplaintStatus `gorm:"type:text;not null;default:Submitted;index" json:"status"`
	CitizenID      string          `gorm:"type:uuid;index;not null" json:"citizen_id"`
	Citizen        *Citizen        `gorm:"foreignKey:CitizenID" json:"citizen,omitempty"`
	AttachmentID   *string         `json:"attachment_id,omitempty"`
	AttachmentName *string         `json:"attachment_name,omitempty"`
	Responses      []Response      `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = StatusSubmitted
	}
	return nil
}

type Response struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	ComplaintID    string    `gorm:"type:uuid;index;not null" json:"complaint_id"`
	ResponderName  string    `gorm:"not null" json:"responder_name"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	IsOfficial     bool      `gorm:"not null;default:false" json:"is_official"`
	AttachmentID   *string   `json:"attachment_id,omitempty"`
	AttachmentName *string   `json:"attachment_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type CreateComplaintRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Address        *string `json:"address"`
	AttachmentID   *string `json:"attachment_id"`
	AttachmentName *string `json:"attachment_name"`
}

// UpdateComplaintRequest only touches the fields that are present.
type UpdateComplaintRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Address     *string `json:"address"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateResponseRequest struct {
	Message        string  `json:"message"`
	AttachmentID   *string `json:"attachment_id"`
	AttachmentName *string `json:"attachment_name"`
}

// CategoryComplaint is a complaint as an official sees it in their queue.
type CategoryComplaint struct {
	Complaint
	Submitter string `json:"submitter"`
}
