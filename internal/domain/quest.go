package domain

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Description string

	// Координаты в пикселях статичной карты кампуса
	X float64
	Y float64

	CreatedAt time.Time
}

type Quest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"index"`
	Description string

	LocationID uuid.UUID `gorm:"type:uuid;index"`
	Location   Location  `gorm:"foreignKey:LocationID"`

	IsMultiplayer bool `gorm:"default:false"`
	RewardPoints  int  `gorm:"default:100"`

	// Null пока квест не выигран. Записывается один раз и больше не меняется.
	WinnerID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Одна запись на пару (user, quest), дубликаты режет составной PK
type Progress struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	QuestID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Completed   bool      `gorm:"default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time
}
