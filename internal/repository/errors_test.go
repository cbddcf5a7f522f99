package repository

import (
	"errors"
	"fmt"
	"testing"

	"complaint-portal/internal/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, model.ErrNotFound},
		{"wrapped record not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), model.ErrNotFound},
		{"malformed uuid", &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, model.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, model.ErrDuplicate},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, model.ErrDuplicate},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
