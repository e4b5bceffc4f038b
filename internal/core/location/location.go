package location

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Location is shared reference data attachable to posts. Unlike categories
// it has no gating effect on post visibility.
type Location struct {
	ID          uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Name        string         `gorm:"not null"`
	IsPublished bool           `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
