package reactive

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/document"
	"complaint-portal/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (a *API) createComplaint(ctx context.Context, id *authz.Identity, raw json.RawMessage) (interface{}, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	submitterID, err := document.ParseID(id.ID)
	if err != nil {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	var args createComplaintArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Title) == "" || strings.TrimSpace(args.Description) == "" ||
		args.CategoryID == "" || strings.TrimSpace(args.Location) == "" {
		return nil, apperr.Validationf("Missing required fields")
	}

	categoryID, err := document.ParseID(args.CategoryID)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if _, err := a.store.CategoryByID(ctx, categoryID); err != nil {
		return nil, notFound(err, "Category not found")
	}

	complaint := &document.Complaint{
		Title:          args.Title,
		Description:    args.Description,
		CategoryID:     categoryID,
		Location:       args.Location,
		Status:         document.StatusPending,
		SubmitterID:    submitterID,
		AttachmentID:   args.AttachmentID,
		AttachmentName: args.AttachmentName,
	}
	if complaint.AttachmentID != "" && complaint.AttachmentName == "" {
		complaint.AttachmentName = "attachment"
	}
	if err := a.store.CreateComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint.ID.Hex(), nil
}

// expand joins a complaint with its category, responses and attachment URL.
// Missing categories are reported as null.
func (a *API) expand(ctx context.Context, c document.Complaint) (ComplaintView, error) {
	view := ComplaintView{Complaint: c}

	category, err := a.store.CategoryByID(ctx, c.CategoryID)
	switch {
	case err == nil:
		view.Category = category
	case !errors.Is(err, model.ErrNotFound):
		return view, err
	}

	view.Responses, err = a.store.ResponsesFor(ctx, c.ID)
	if err != nil {
		return view, err
	}
	if view.Responses == nil {
		view.Responses = []document.Response{}
	}

	if c.AttachmentID != "" {
		view.AttachmentURL = a.attachments.URL(c.AttachmentID)
	}
	return view, nil
}

func (a *API) listUserComplaints(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	out := []ComplaintView{}
	if id == nil {
		return out, nil
	}
	uid, err := document.ParseID(id.ID)
	if err != nil {
		return out, nil
	}

	complaints, err := a.store.ComplaintsBySubmitter(ctx, uid)
	if err != nil {
		return nil, err
	}
	for _, c := range complaints {
		view, err := a.expand(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (a *API) listCategories(ctx context.Context, _ *authz.Identity, _ json.RawMessage) (interface{}, error) {
	return a.store.Categories(ctx)
}

// addResponse lets any signed-in user respond. Responses from officials are
// attributed with their title and mark the complaint responded.
func (a *API) addResponse(ctx context.Context, id *authz.Identity, raw json.RawMessage) (interface{}, error) {
	if d := authz.Decide(id, authz.Respond, authz.Resource{}); !d.Allowed {
		return nil, d.Err()
	}

	var args addResponseArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Message) == "" {
		return nil, apperr.Validationf("Message is required")
	}

	complaintID, err := document.ParseID(args.ComplaintID)
	if err != nil {
		return nil, notFound(err, "Complaint not found")
	}
	if _, err := a.store.ComplaintByID(ctx, complaintID); err != nil {
		return nil, notFound(err, "Complaint not found")
	}

	response := &document.Response{
		ComplaintID:   complaintID,
		ResponderName: authz.ResponderName(id),
		Message:       args.Message,
		IsOfficial:    id.IsOfficial(),
	}
	if err := a.store.InsertResponse(ctx, response); err != nil {
		return nil, err
	}

	if response.IsOfficial {
		if err := a.store.SetComplaintStatus(ctx, complaintID, document.StatusResponded); err != nil {
			return nil, notFound(err, "Complaint not found")
		}
	}
	return response.ID.Hex(), nil
}

func (a *API) isOfficial(_ context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	return id.IsOfficial(), nil
}

func officialCategory(id *authz.Identity) (primitive.ObjectID, bool) {
	if !id.IsOfficial() {
		return primitive.NilObjectID, false
	}
	categoryID, err := document.ParseID(id.Official.CategoryID)
	return categoryID, err == nil
}

func (a *API) getOfficialCategory(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	categoryID, ok := officialCategory(id)
	if !ok {
		return nil, nil
	}
	category, err := a.store.CategoryByID(ctx, categoryID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// listCategoryComplaints shows an official every complaint filed under
// their category, with the submitter's name.
func (a *API) listCategoryComplaints(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	out := []ComplaintView{}
	if d := authz.Decide(id, authz.ViewCategoryComplaints, authz.Resource{}); !d.Allowed {
		return out, nil
	}
	categoryID, ok := officialCategory(id)
	if !ok {
		return out, nil
	}

	complaints, err := a.store.ComplaintsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, c := range complaints {
		view, err := a.expand(ctx, c)
		if err != nil {
			return nil, err
		}
		view.Submitter = "Anonymous"
		if u, err := a.store.UserByID(ctx, c.SubmitterID); err == nil && u.Name != "" {
			view.Submitter = u.Name
		} else if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (a *API) generateUploadURL(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	return a.attachments.UploadURL(ctx, id.ID)
}
