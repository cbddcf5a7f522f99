package service

import (
	"context"

	"complaint-portal/internal/model"
)

// The services depend on these narrow views of the repositories so tests can
// substitute mocks.

type CitizenStore interface {
	Create(ctx context.Context, citizen *model.Citizen) error
	FindByEmail(ctx context.Context, email string) (*model.Citizen, error)
	FindByID(ctx context.Context, id string) (*model.Citizen, error)
	FindProfile(ctx context.Context, id string) (*model.Citizen, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type ComplaintStore interface {
	Create(ctx context.Context, complaint *model.Complaint, ev *model.OutboxEvent) error
	FindAll(ctx context.Context) ([]model.Complaint, error)
	FindByID(ctx context.Context, id string) (*model.Complaint, error)
	FindByCategory(ctx context.Context, category string) ([]model.Complaint, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status model.ComplaintStatus, ev *model.OutboxEvent) error
	AddResponse(ctx context.Context, resp *model.Response, newStatus *model.ComplaintStatus, ev *model.OutboxEvent) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
}

type OfficialStore interface {
	Create(ctx context.Context, official *model.Official) error
	FindByUserID(ctx context.Context, userID string) (*model.Official, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	FindAll(ctx context.Context) ([]model.OfficialView, error)
}

type AdminStore interface {
	Create(ctx context.Context, admin *model.Admin) error
	DeleteByUserID(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID string) (bool, error)
	FindAll(ctx context.Context) ([]model.AdminView, error)
}

// TokenSigner issues session tokens for a logged-in citizen.
type TokenSigner interface {
	Issue(id, name, email string) (string, error)
}
