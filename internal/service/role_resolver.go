package service

import (
	"context"
	"errors"

	"complaint-portal/internal/authz"
	"complaint-portal/internal/model"
)

// RoleResolver answers authz role lookups from the relational store.
type RoleResolver struct {
	officials OfficialStore
	admins    AdminStore
}

func NewRoleResolver(officials OfficialStore, admins AdminStore) *RoleResolver {
	return &RoleResolver{officials: officials, admins: admins}
}

func (r *RoleResolver) ResolveRoles(ctx context.Context, userID string) (authz.RoleFacts, error) {
	var facts authz.RoleFacts

	isAdmin, err := r.admins.Exists(ctx, userID)
	if err != nil {
		return facts, err
	}
	facts.IsAdmin = isAdmin

	official, err := r.officials.FindByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return facts, nil
	}
	if err != nil {
		return facts, err
	}

	role := &authz.OfficialRole{CategoryID: official.CategoryID, Title: official.Title}
	if official.Category != nil {
		role.CategoryName = official.Category.Name
	}
	facts.Official = role
	return facts, nil
}
