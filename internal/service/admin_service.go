package service

import (
	"context"
	"errors"
	"strings"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/model"
)

// AdminService manages categories, official appointments and admin grants.
type AdminService struct {
	citizens   CitizenStore
	categories CategoryStore
	officials  OfficialStore
	admins     AdminStore
}

func NewAdminService(citizens CitizenStore, categories CategoryStore, officials OfficialStore, admins AdminStore) *AdminService {
	return &AdminService{
		citizens:   citizens,
		categories: categories,
		officials:  officials,
		admins:     admins,
	}
}

func (s *AdminService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *AdminService) AddCategory(ctx context.Context, id *authz.Identity, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := authz.Decide(id, authz.ManageCategories, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validationf("Name is required")
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		AgencyEmail: req.AgencyEmail,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "Category already exists", err)
		}
		return nil, err
	}
	return category, nil
}

// AddOfficial appoints the citizen with the given email as an official of a
// category. The existence check only produces the friendly message; the
// unique index on user_id settles concurrent appointments.
func (s *AdminService) AddOfficial(ctx context.Context, id *authz.Identity, req *model.AddOfficialRequest) (*model.Official, error) {
	if err := authz.Decide(id, authz.AppointOfficial, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	if req.Email == "" || req.CategoryID == "" || req.Title == "" {
		return nil, apperr.Validationf("Missing required fields")
	}

	user, err := s.citizens.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apperr.NotFoundf("Category not found")
		}
		return nil, err
	}

	already, err := s.officials.ExistsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	d := authz.Decide(id, authz.AppointOfficial, authz.Resource{TargetIsOfficial: already})
	if err := d.Err(); err != nil {
		return nil, err
	}

	official := &model.Official{
		UserID:     user.ID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
	}
	if err := s.officials.Create(ctx, official); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "User is already an official", err)
		}
		return nil, err
	}
	return official, nil
}

func (s *AdminService) ListOfficials(ctx context.Context, id *authz.Identity) ([]model.OfficialView, error) {
	if err := authz.Decide(id, authz.ListOfficials, authz.Resource{}).Err(); err != nil {
		return nil, err
	}
	officials, err := s.officials.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if officials == nil {
		officials = []model.OfficialView{}
	}
	return officials, nil
}

// GrantAdmin is an operator action; it is not reachable over HTTP.
func (s *AdminService) GrantAdmin(ctx context.Context, email string) (*model.Admin, error) {
	user, err := s.citizens.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{UserID: user.ID}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "User is already an admin", err)
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) RevokeAdmin(ctx context.Context, email string) error {
	user, err := s.citizens.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apperr.NotFoundf("User not found")
	}
	if err != nil {
		return err
	}

	if err := s.admins.DeleteByUserID(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperr.NotFoundf("User is not an admin")
		}
		return err
	}
	return nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]model.AdminView, error) {
	return s.admins.FindAll(ctx)
}
