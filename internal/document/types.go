package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Complaint statuses of the document backend. An official response moves a
// complaint from pending to responded.
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	AgencyEmail string             `bson:"agencyEmail,omitempty" json:"agencyEmail,omitempty"`
}

type Complaint struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	CategoryID     primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Status         string             `bson:"status" json:"status"`
	SubmitterID    primitive.ObjectID `bson:"submitterId" json:"submitterId"`
	Location       string             `bson:"location" json:"location"`
	AttachmentID   string             `bson:"attachmentId,omitempty" json:"attachmentId,omitempty"`
	AttachmentName string             `bson:"attachmentName,omitempty" json:"attachmentName,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

type Response struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ComplaintID   primitive.ObjectID `bson:"complaintId" json:"complaintId"`
	ResponderName string             `bson:"responderName" json:"responderName"`
	Message       string             `bson:"message" json:"message"`
	IsOfficial    bool               `bson:"isOfficial" json:"isOfficial"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

type Official struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Title      string             `bson:"title" json:"title"`
}

type Admin struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
}
