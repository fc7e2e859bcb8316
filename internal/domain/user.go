package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex;not null;size:100"`
	Username string    `gorm:"size:50"`
	Role     string    `gorm:"default:'student'"`

	// Баланс меняется ТОЛЬКО атомарным инкрементом в репозитории,
	// никогда через read-modify-write из хендлеров
	Points int `gorm:"default:0"`

	AvatarID  int    `gorm:"default:1"` // ID пресета (1-10)
	AvatarURL string // Кастомная аватарка из S3, если загружена

	CreatedAt time.Time
	UpdatedAt time.Time
}
