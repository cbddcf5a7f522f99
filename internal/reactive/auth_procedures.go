package reactive

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/auth"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/document"
	"complaint-portal/internal/model"
)

func (a *API) session(u *document.User) (*Session, error) {
	token, err := a.tokens.Issue(u.ID.Hex(), u.Name, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}

func (a *API) signUp(ctx context.Context, _ *authz.Identity, raw json.RawMessage) (interface{}, error) {
	var args signUpArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	args.Email = strings.TrimSpace(args.Email)
	if args.Name == "" || args.Email == "" || args.Password == "" {
		return nil, apperr.Validationf("Name, email and password are required")
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}

	user := &document.User{Name: args.Name, Email: args.Email, PasswordHash: hash}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "Email already in use", err)
		}
		return nil, err
	}
	return a.session(user)
}

func (a *API) signIn(ctx context.Context, _ *authz.Identity, raw json.RawMessage) (interface{}, error) {
	var args signInArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Email == "" || args.Password == "" {
		return nil, apperr.Validationf("Email and password are required")
	}

	user, err := a.store.UserByEmail(ctx, strings.TrimSpace(args.Email))
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(args.Password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	return a.session(user)
}

// loggedInUser is null for anonymous callers and for tokens whose user no
// longer exists.
func (a *API) loggedInUser(ctx context.Context, id *authz.Identity, _ json.RawMessage) (interface{}, error) {
	if id == nil {
		return nil, nil
	}
	uid, err := document.ParseID(id.ID)
	if err != nil {
		return nil, nil
	}
	user, err := a.store.UserByID(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
