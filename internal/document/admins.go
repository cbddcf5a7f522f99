package document

import (
	"context"
	"errors"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/model"
)

// GrantAdmin and RevokeAdmin are operator actions. The reactive API has no
// procedure that creates admins.
func (s *Store) GrantAdmin(ctx context.Context, email string) error {
	user, err := s.UserByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apperr.NotFoundf("User not found")
	}
	if err != nil {
		return err
	}
	if err := s.AddAdmin(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return apperr.Wrap(apperr.Conflict, "User is already an admin", err)
		}
		return err
	}
	return nil
}

func (s *Store) RevokeAdmin(ctx context.Context, email string) error {
	user, err := s.UserByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apperr.NotFoundf("User not found")
	}
	if err != nil {
		return err
	}
	if err := s.RemoveAdmin(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperr.NotFoundf("User is not an admin")
		}
		return err
	}
	return nil
}

// AdminViews lists admins with their account details. Admins whose user
// record is gone are listed with the id only.
func (s *Store) AdminViews(ctx context.Context) ([]model.AdminView, error) {
	admins, err := s.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]model.AdminView, 0, len(admins))
	for _, a := range admins {
		view := model.AdminView{UserID: a.UserID.Hex()}
		user, err := s.UserByID(ctx, a.UserID)
		switch {
		case err == nil:
			view.Email = user.Email
			view.Name = user.Name
		case !errors.Is(err, model.ErrNotFound):
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
