// Package authz resolves who a caller is and decides what they may do. Both
// the REST handlers and the reactive procedures go through it.
package authz

import "context"

// OfficialRole scopes an official to one category.
type OfficialRole struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Title        string `json:"title"`
}

type RoleFacts struct {
	IsAdmin  bool          `json:"is_admin"`
	Official *OfficialRole `json:"official,omitempty"`
}

// Identity is resolved per request from a validated token and is never stored.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	RoleFacts
}

func (i *Identity) IsOfficial() bool {
	return i != nil && i.Official != nil
}

// RoleResolver looks up the admin and official records of a user in the
// backing store.
type RoleResolver interface {
	ResolveRoles(ctx context.Context, userID string) (RoleFacts, error)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
