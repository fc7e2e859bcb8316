package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Закрытый набор категорий — используется ачивкой all_categories
var PhotoCategories = []string{"landmark", "building", "nature", "statue", "other"}

type GeoPhoto struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ImageURL string

	// Правильный ответ: координаты в пикселях карты кампуса
	X float64
	Y float64

	Category   string `gorm:"index"`
	Difficulty string `gorm:"default:'easy'"`

	// Неподтвержденные фото в игру не попадают
	Verified bool `gorm:"default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Журнал попыток. Составной PK гарантирует максимум одну попытку
// на пару (user, photo); строки после вставки не меняются.
type GeoAttempt struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	PhotoID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Distance  float64
	Tier      string
	Points    int
	HintsUsed int

	CreatedAt time.Time
}

func (GeoAttempt) TableName() string {
	return "geothinkr_history"
}

func (GeoPhoto) TableName() string {
	return "geothinkr_photos"
}
