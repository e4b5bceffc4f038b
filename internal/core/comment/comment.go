package comment

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"scriptum/internal/core/post"
	"scriptum/internal/core/user"
)

type Comment struct {
	ID       uuid.UUID `gorm:"primary_key;type:char(36)"`
	Text     string    `gorm:"type:text;not null"`
	PostID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Post     post.Post `gorm:"foreignkey:PostID"`
	AuthorID uuid.UUID `gorm:"type:char(36);not null"`
	Author   user.User `gorm:"foreignkey:AuthorID"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
