package reactive

import (
	"context"

	"complaint-portal/internal/document"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the document storage the procedures run against.
type Store interface {
	CreateUser(ctx context.Context, u *document.User) error
	UserByEmail(ctx context.Context, email string) (*document.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*document.User, error)

	OfficialByUser(ctx context.Context, userID primitive.ObjectID) (*document.Official, error)
	CreateOfficial(ctx context.Context, o *document.Official) error
	ListOfficials(ctx context.Context) ([]document.Official, error)

	CreateCategory(ctx context.Context, c *document.Category) error
	Categories(ctx context.Context) ([]document.Category, error)
	CategoryByID(ctx context.Context, id primitive.ObjectID) (*document.Category, error)

	CreateComplaint(ctx context.Context, c *document.Complaint) error
	ComplaintByID(ctx context.Context, id primitive.ObjectID) (*document.Complaint, error)
	ComplaintsBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]document.Complaint, error)
	ComplaintsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]document.Complaint, error)
	SetComplaintStatus(ctx context.Context, id primitive.ObjectID, status string) error

	InsertResponse(ctx context.Context, r *document.Response) error
	ResponsesFor(ctx context.Context, complaintID primitive.ObjectID) ([]document.Response, error)
}

type TokenSigner interface {
	Issue(id, name, email string) (string, error)
}

// Attachments is the upload handshake shared with the REST variant.
type Attachments interface {
	UploadURL(ctx context.Context, ownerID string) (string, error)
	URL(id string) string
}

// ChangePublisher announces that a mutation has changed data.
type ChangePublisher interface {
	Publish(ctx context.Context, source string) error
}
