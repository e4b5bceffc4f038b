package database

import (
	"errors"

	"gorm.io/gorm"
	"scriptum/internal/core/apperr"
)

// translate maps gorm lookup failures onto the shared error taxonomy so
// services and controllers never import gorm.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
