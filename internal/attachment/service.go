package attachment

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"complaint-portal/internal/apperr"
)

// Service ties upload tickets to the blob store and builds the public URLs
// clients use for both steps.
type Service struct {
	tickets  *Tickets
	store    *DiskStore
	baseURL  string
	maxBytes int64
}

func NewService(tickets *Tickets, store *DiskStore, baseURL string, maxBytes int64) *Service {
	return &Service{
		tickets:  tickets,
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// UploadURL issues a single-use URL the owner can post one file to.
func (s *Service) UploadURL(ctx context.Context, ownerID string) (string, error) {
	if ownerID == "" {
		return "", apperr.Unauthenticated("Not authenticated")
	}
	token, err := s.tickets.Issue(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/uploads/" + token, nil
}

// Accept redeems token and stores body. The ticket is spent even when the
// body is rejected.
func (s *Service) Accept(ctx context.Context, token, name, contentType string, body io.Reader) (*Blob, error) {
	ownerID, err := s.tickets.Redeem(ctx, token)
	if errors.Is(err, ErrTicketInvalid) {
		return nil, apperr.Wrap(apperr.NotFound, "Upload URL is invalid or expired", err)
	}
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = "attachment"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	blob, err := s.store.Save(Blob{Name: name, ContentType: contentType, OwnerID: ownerID}, body, s.maxBytes)
	if errors.Is(err, ErrTooLarge) {
		return nil, apperr.Wrap(apperr.Validation, "File too large", err)
	}
	return blob, err
}

func (s *Service) Open(id string) (*Blob, *os.File, error) {
	blob, f, err := s.store.Open(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, apperr.Wrap(apperr.NotFound, "Attachment not found", err)
	}
	return blob, f, err
}

// URL is where a stored attachment can be downloaded.
func (s *Service) URL(id string) string {
	return s.baseURL + "/attachments/" + id
}
