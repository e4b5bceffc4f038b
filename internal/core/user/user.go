package user

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Username  string         `gorm:"unique;not null"`
	FirstName string
	LastName  string
	Email     string
	Password  string         `gorm:"not null"`
	IsStaff   bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
