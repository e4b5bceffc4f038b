package category

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Title       string         `gorm:"not null"`
	Slug        string         `gorm:"unique;not null"`
	Description string         `gorm:"type:text"`
	IsPublished bool           `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
