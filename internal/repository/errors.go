package repository

import (
	"errors"

	"complaint-portal/internal/database"
	"complaint-portal/internal/model"

	"gorm.io/gorm"
)

// translate maps gorm and driver errors to the shared storage errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case database.IsInvalidText(err):
		// a malformed uuid key cannot match any row
		return model.ErrNotFound
	case database.IsUniqueViolation(err):
		return model.ErrDuplicate
	default:
		return err
	}
}
