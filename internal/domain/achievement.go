package domain

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	Key         string `gorm:"primaryKey;size:50"`
	Name        string
	Description string
	Icon        string
}

type UserAchievement struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AchievementKey string    `gorm:"primaryKey;size:50"`
	EarnedAt       time.Time
}
