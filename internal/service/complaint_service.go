package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/model"

	"github.com/google/uuid"
)

type ComplaintService struct {
	complaints ComplaintStore
	now        func() time.Time
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaints ComplaintStore) *ComplaintService {
	return &ComplaintService{complaints: complaints, now: time.Now}
}

func notFound(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return apperr.NotFoundf("Complaint not found")
	}
	return err
}

// Create files a complaint for the caller and enqueues complaint.created in
// the same transaction.
func (s *ComplaintService) Create(ctx context.Context, id *authz.Identity, req *model.CreateComplaintRequest) (*model.Complaint, error) {
	if id == nil {
		return nil, apperr.Unauthenticated("Not authenticated")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, apperr.Validationf("Missing required fields")
	}

	complaint := &model.Complaint{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Address:        req.Address,
		Status:         model.StatusSubmitted,
		CitizenID:      id.ID,
		AttachmentID:   req.AttachmentID,
		AttachmentName: req.AttachmentName,
	}

	ev := &model.OutboxEvent{
		RoutingKey: model.RoutingKeyComplaintCreated,
		Payload: model.ComplaintCreatedMessage{
			ComplaintID:    complaint.ID,
			ComplaintTitle: complaint.Title,
			Category:       complaint.Category,
			CitizenID:      id.ID,
			Timestamp:      s.now().Unix(),
		},
	}
	if err := s.complaints.Create(ctx, complaint, ev); err != nil {
		return nil, err
	}

	return s.complaints.FindByID(ctx, complaint.ID)
}

func (s *ComplaintService) List(ctx context.Context) ([]model.Complaint, error) {
	complaints, err := s.complaints.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}
	return complaints, nil
}

func (s *ComplaintService) Get(ctx context.Context, complaintID string) (*model.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, notFound(err)
	}
	return complaint, nil
}

func (s *ComplaintService) ListByCategory(ctx context.Context, category string) ([]model.Complaint, error) {
	complaints, err := s.complaints.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []model.Complaint{}
	}
	return complaints, nil
}

// Update changes the supplied fields of a complaint owned by the caller.
func (s *ComplaintService) Update(ctx context.Context, id *authz.Identity, complaintID string, req *model.UpdateComplaintRequest) (*model.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, notFound(err)
	}

	d := authz.Decide(id, authz.UpdateComplaint, authz.Resource{SubmitterID: complaint.CitizenID})
	if err := d.Err(); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if err := s.complaints.Update(ctx, complaintID, fields); err != nil {
		return nil, notFound(err)
	}

	return s.Get(ctx, complaintID)
}

func (s *ComplaintService) Delete(ctx context.Context, id *authz.Identity, complaintID string) error {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return notFound(err)
	}

	d := authz.Decide(id, authz.DeleteComplaint, authz.Resource{SubmitterID: complaint.CitizenID})
	if err := d.Err(); err != nil {
		return err
	}

	return notFound(s.complaints.Delete(ctx, complaintID))
}

// UpdateStatus validates the status before looking the complaint up, so a bad
// value is a 400 even for a missing complaint. The owner and the officials of
// the complaint's category may change it.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id *authz.Identity, complaintID string, status string) (*model.Complaint, error) {
	if status == "" {
		return nil, apperr.Validationf("Status is required")
	}
	if !validStatus(status) {
		return nil, apperr.Validationf("Invalid status value")
	}

	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, notFound(err)
	}

	d := authz.Decide(id, authz.UpdateStatus, authz.Resource{
		SubmitterID:     complaint.CitizenID,
		CategoryName:    complaint.Category,
		Status:          status,
		AllowedStatuses: model.ComplaintStatuses,
	})
	if err := d.Err(); err != nil {
		return nil, err
	}

	ev := &model.OutboxEvent{
		RoutingKey: model.RoutingKeyStatusUpdate,
		Payload: model.StatusUpdateMessage{
			ComplaintID:    complaint.ID,
			ComplaintTitle: complaint.Title,
			NewStatus:      status,
			CitizenID:      complaint.CitizenID,
			Timestamp:      s.now().Unix(),
		},
	}
	if err := s.complaints.UpdateStatus(ctx, complaintID, model.ComplaintStatus(status), ev); err != nil {
		return nil, notFound(err)
	}

	return s.Get(ctx, complaintID)
}

func validStatus(status string) bool {
	for _, s := range model.ComplaintStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AddResponse appends a response to a complaint. Officials respond with
// their title and move a Submitted complaint into review.
func (s *ComplaintService) AddResponse(ctx context.Context, id *authz.Identity, complaintID string, req *model.CreateResponseRequest) (*model.Response, error) {
	if err := authz.Decide(id, authz.Respond, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperr.Validationf("Message is required")
	}

	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, notFound(err)
	}

	resp := &model.Response{
		ID:             uuid.NewString(),
		ComplaintID:    complaint.ID,
		ResponderName:  authz.ResponderName(id),
		Message:        req.Message,
		IsOfficial:     id.IsOfficial(),
		AttachmentID:   req.AttachmentID,
		AttachmentName: req.AttachmentName,
		CreatedAt:      s.now(),
	}

	var newStatus *model.ComplaintStatus
	if resp.IsOfficial && complaint.Status == model.StatusSubmitted {
		inReview := model.StatusInReview
		newStatus = &inReview
	}

	ev := &model.OutboxEvent{
		RoutingKey: model.RoutingKeyResponseAdded,
		Payload: model.ResponseAddedMessage{
			ComplaintID:    complaint.ID,
			ComplaintTitle: complaint.Title,
			CitizenID:      complaint.CitizenID,
			ResponderID:    id.ID,
			ResponderName:  resp.ResponderName,
			IsOfficial:     resp.IsOfficial,
			Timestamp:      s.now().Unix(),
		},
	}
	if err := s.complaints.AddResponse(ctx, resp, newStatus, ev); err != nil {
		return nil, err
	}

	return resp, nil
}

// ListForOfficial returns the complaints of the caller's category with the
// submitter's name.
func (s *ComplaintService) ListForOfficial(ctx context.Context, id *authz.Identity) ([]model.CategoryComplaint, error) {
	if err := authz.Decide(id, authz.ViewCategoryComplaints, authz.Resource{}).Err(); err != nil {
		return nil, err
	}

	complaints, err := s.complaints.FindByCategory(ctx, id.Official.CategoryName)
	if err != nil {
		return nil, err
	}

	out := make([]model.CategoryComplaint, 0, len(complaints))
	for _, c := range complaints {
		submitter := "Anonymous"
		if c.Citizen != nil && c.Citizen.Name != "" {
			submitter = c.Citizen.Name
		}
		out = append(out, model.CategoryComplaint{Complaint: c, Submitter: submitter})
	}
	return out, nil
}
