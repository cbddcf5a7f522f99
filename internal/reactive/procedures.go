// Package reactive serves the document backend as named procedures. Queries
// can be called once over HTTP or subscribed to over a websocket, in which
// case they are re-run whenever a mutation reports a change.
package reactive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/authz"
	"complaint-portal/internal/model"
)

type Kind int

const (
	// Query reads data and may be subscribed to.
	Query Kind = iota
	// Mutation writes data; a successful call publishes a change.
	Mutation
	// Action has side effects that no query observes.
	Action
)

type HandlerFunc func(ctx context.Context, id *authz.Identity, args json.RawMessage) (interface{}, error)

type Procedure struct {
	Kind    Kind
	Handler HandlerFunc
}

type Registry map[string]Procedure

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// API holds the dependencies every procedure shares.
type API struct {
	store       Store
	tokens      TokenSigner
	attachments Attachments
}

func NewAPI(store Store, tokens TokenSigner, attachments Attachments) *API {
	return &API{store: store, tokens: tokens, attachments: attachments}
}

func (a *API) Procedures() Registry {
	return Registry{
		"auth:signUp":       {Kind: Action, Handler: a.signUp},
		"auth:signIn":       {Kind: Action, Handler: a.signIn},
		"auth:loggedInUser": {Kind: Query, Handler: a.loggedInUser},

		"admin:isAdmin":       {Kind: Query, Handler: a.isAdmin},
		"admin:addOfficial":   {Kind: Mutation, Handler: a.addOfficial},
		"admin:listOfficials": {Kind: Query, Handler: a.listOfficials},
		"admin:addCategory":   {Kind: Mutation, Handler: a.addCategory},

		"complaints:createComplaint":        {Kind: Mutation, Handler: a.createComplaint},
		"complaints:listUserComplaints":     {Kind: Query, Handler: a.listUserComplaints},
		"complaints:listCategories":         {Kind: Query, Handler: a.listCategories},
		"complaints:addResponse":            {Kind: Mutation, Handler: a.addResponse},
		"complaints:isOfficial":             {Kind: Query, Handler: a.isOfficial},
		"complaints:getOfficialCategory":    {Kind: Query, Handler: a.getOfficialCategory},
		"complaints:listCategoryComplaints": {Kind: Query, Handler: a.listCategoryComplaints},
		"complaints:generateUploadUrl":      {Kind: Mutation, Handler: a.generateUploadURL},
	}
}

// decodeArgs accepts an absent or null argument object as empty.
func decodeArgs(raw json.RawMessage, dst interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid arguments", err)
	}
	return nil
}

func requireIdentity(id *authz.Identity) error {
	if id == nil || id.ID == "" {
		return apperr.Unauthenticated("Not authenticated")
	}
	return nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, model.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, msg, err)
	}
	return err
}
