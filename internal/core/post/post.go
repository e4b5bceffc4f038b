package post

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"scriptum/internal/core/category"
	"scriptum/internal/core/location"
	"scriptum/internal/core/user"
)

type Post struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title       string    `gorm:"not null"`
	Text        string    `gorm:"type:text;not null"`
	ImageURL    string
	PubDate     time.Time `gorm:"not null;index"`
	IsPublished bool      `gorm:"not null"`

	AuthorID   uuid.UUID          `gorm:"type:char(36);not null;index"`
	Author     user.User          `gorm:"foreignkey:AuthorID"`
	CategoryID *uuid.UUID         `gorm:"type:char(36);index"`
	Category   *category.Category `gorm:"foreignkey:CategoryID"`
	LocationID *uuid.UUID         `gorm:"type:char(36)"`
	Location   *location.Location `gorm:"foreignkey:LocationID"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PubliclyVisible reports whether the post may be shown to actors other
// than its author or staff: published, not future-dated, and not attached
// to an unpublished category.
func (p *Post) PubliclyVisible(now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	if p.Category != nil && !p.Category.IsPublished {
		return false
	}
	return true
}
