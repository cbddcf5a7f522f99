package service

import (
	"context"
	"errors"
	"strings"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/auth"
	"complaint-portal/internal/model"
)

// CitizenService handles registration, login and profiles.
type CitizenService struct {
	citizens CitizenStore
	tokens   TokenSigner
}

// NewCitizenService creates a new CitizenService
func NewCitizenService(citizens CitizenStore, tokens TokenSigner) *CitizenService {
	return &CitizenService{citizens: citizens, tokens: tokens}
}

// Register creates a citizen account. The email pre-check gives the usual
// message; a concurrent duplicate is still caught by the unique index.
func (s *CitizenService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Citizen, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validationf("Name, email and password are required")
	}

	exists, err := s.citizens.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ConflictOf("Email already in use")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	citizen := &model.Citizen{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.citizens.Create(ctx, citizen); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, apperr.Wrap(apperr.Conflict, "Email already in use", err)
		}
		return nil, err
	}

	return citizen, nil
}

func (s *CitizenService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validationf("Email and password are required")
	}

	citizen, err := s.citizens.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(req.Password, citizen.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}

	token, err := s.tokens.Issue(citizen.ID, citizen.Name, citizen.Email)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Citizen: citizen, Token: token}, nil
}

// Profile returns the citizen with their complaints, newest first.
func (s *CitizenService) Profile(ctx context.Context, citizenID string) (*model.CitizenProfile, error) {
	citizen, err := s.citizens.FindProfile(ctx, citizenID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apperr.NotFoundf("Citizen not found")
	}
	if err != nil {
		return nil, err
	}
	profile := &model.CitizenProfile{Citizen: citizen, Complaints: citizen.Complaints}
	if profile.Complaints == nil {
		profile.Complaints = []model.Complaint{}
	}
	return profile, nil
}
