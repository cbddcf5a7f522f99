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
)

func (a *API) isAdmin(_ context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	return id != nil && id.IsAdmin, nil
}

func (a *API) addOfficial(ctx context.Context, id *authz.Identity, raw json.RawMessage) (interface{}, error) {
	if d := authz.Decide(id, authz.AppointOfficial, authz.Resource{}); !d.Allowed {
		return nil, d.Err()
	}

	var args addOfficialArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	args.Email = strings.TrimSpace(args.Email)
	if args.Email == "" || args.CategoryID == "" || args.Title == "" {
		return nil, apperr.Validationf("Missing required fields")
	}

	user, err := a.store.UserByEmail(ctx, args.Email)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	_, err = a.store.OfficialByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if d := authz.Decide(id, authz.AppointOfficial, authz.Resource{TargetIsOfficial: err == nil}); !d.Allowed {
		return nil, d.Err()
	}

	categoryID, err := document.ParseID(args.CategoryID)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if _, err := a.store.CategoryByID(ctx, categoryID); err != nil {
		return nil, notFound(err, "Category not found")
	}

	official := &document.Official{UserID: user.ID, CategoryID: categoryID, Title: args.Title}
	if err := a.store.CreateOfficial(ctx, official); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "User is already an official", err)
		}
		return nil, err
	}
	return official.ID.Hex(), nil
}

// listOfficials is empty rather than an error for callers who are not admins.
func (a *API) listOfficials(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	out := []OfficialView{}
	if d := authz.Decide(id, authz.ListOfficials, authz.Resource{}); !d.Allowed {
		return out, nil
	}

	officials, err := a.store.ListOfficials(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range officials {
		view := OfficialView{Official: o}
		if u, err := a.store.UserByID(ctx, o.UserID); err == nil {
			view.Email = u.Email
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		if c, err := a.store.CategoryByID(ctx, o.CategoryID); err == nil {
			view.CategoryName = c.Name
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (a *API) addCategory(ctx context.Context, id *authz.Identity, raw json.RawMessage) (interface{}, error) {
	if d := authz.Decide(id, authz.ManageCategories, authz.Resource{}); !d.Allowed {
		return nil, d.Err()
	}

	var args addCategoryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	args.Name = strings.TrimSpace(args.Name)
	if args.Name == "" {
		return nil, apperr.Validationf("Name is required")
	}

	category := &document.Category{Name: args.Name, Description: args.Description, AgencyEmail: args.AgencyEmail}
	if err := a.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category.ID.Hex(), nil
}
