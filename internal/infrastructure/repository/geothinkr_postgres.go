package repository

import (
	"context"
	"errors"

	"sidequest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeoThinkrRepository struct {
	db *gorm.DB
}

func NewGeoThinkrRepository(db *gorm.DB) *GeoThinkrRepository {
	return &GeoThinkrRepository{db: db}
}

func (r *GeoThinkrRepository) CreatePhoto(ctx context.Context, photo *domain.GeoPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *GeoThinkrRepository) GetPhoto(ctx context.Context, id uuid.UUID) (*domain.GeoPhoto, error) {
	var photo domain.GeoPhoto
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *GeoThinkrRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.db.WithContext(ctx).Model(&domain.GeoPhoto{}).
		Where("id = ?", id).
		Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// Случайное подтвержденное фото, которое юзер еще не играл
func (r *GeoThinkrRepository) RandomUnplayedPhoto(ctx context.Context, userID uuid.UUID, category string) (*domain.GeoPhoto, error) {
	played := r.db.Model(&domain.GeoAttempt{}).
		Select("photo_id").
		Where("user_id = ?", userID)

	query := r.db.WithContext(ctx).
		Where("verified = ?", true).
		Where("id NOT IN (?)", played)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var photo domain.GeoPhoto
	err := query.Order("RANDOM()").First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoPhotosLeft
		}
		return nil, err
	}
	return &photo, nil
}

func (r *GeoThinkrRepository) HasPlayed(ctx context.Context, userID, photoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GeoAttempt{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Count(&count).Error
	return count > 0, err
}

// RecordAttemptAndAward пишет строку журнала и начисляет очки в одной
// транзакции: нельзя увидеть засчитанную попытку без выплаты и наоборот.
// Сама вставка и есть источник правды про "уже играл" — составной PK
// отбивает конкурентный дубль, который проскочил мимо предварительной
// проверки HasPlayed.
func (r *GeoThinkrRepository) RecordAttemptAndAward(ctx context.Context, attempt *domain.GeoAttempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			if isDuplicateKey(err) {
				return domain.ErrAlreadyPlayed
			}
			return err
		}

		if attempt.Points <= 0 {
			return nil
		}
		return awardTx(tx, attempt.UserID, attempt.Points)
	})
}

// История попыток юзера в хронологическом порядке (для ачивок)
func (r *GeoThinkrRepository) HistoryAsc(ctx context.Context, userID uuid.UUID) ([]domain.GeoAttempt, error) {
	var attempts []domain.GeoAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&attempts).Error
	return attempts, err
}

func (r *GeoThinkrRepository) HistoryDesc(ctx context.Context, userID uuid.UUID) ([]domain.GeoAttempt, error) {
	var attempts []domain.GeoAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}

// Уникальные категории фото, по которым юзер уже делал попытки
func (r *GeoThinkrRepository) PlayedCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.GeoAttempt{}).
		Distinct("geothinkr_photos.category").
		Joins("JOIN geothinkr_photos ON geothinkr_photos.id = geothinkr_history.photo_id").
		Where("geothinkr_history.user_id = ?", userID).
		Pluck("geothinkr_photos.category", &categories).Error
	return categories, err
}
