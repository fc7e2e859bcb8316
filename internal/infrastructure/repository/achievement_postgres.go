package repository

import (
	"context"
	"time"

	"sidequest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Сидирование каталога при старте. FirstOrCreate, чтобы рестарт
// ничего не дублировал и не перетирал правки
func (r *AchievementRepository) Seed(ctx context.Context, catalog []domain.Achievement) error {
	for _, a := range catalog {
		err := r.db.WithContext(ctx).
			Where(domain.Achievement{Key: a.Key}).
			Attrs(a).
			FirstOrCreate(&domain.Achievement{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *AchievementRepository) Catalog(ctx context.Context) ([]domain.Achievement, error) {
	var all []domain.Achievement
	err := r.db.WithContext(ctx).Order("key asc").Find(&all).Error
	return all, err
}

func (r *AchievementRepository) EarnedKeys(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&domain.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_key", &keys).Error
	return keys, err
}

func (r *AchievementRepository) ListEarned(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	var earned []domain.UserAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at asc").
		Find(&earned).Error
	return earned, err
}

// UnlockMissing вставляет только еще не полученные ачивки и возвращает,
// что реально добавилось. Конкурентный дубль гасится составным PK —
// идемпотентность держится на нем, а не на предварительном чтении.
func (r *AchievementRepository) UnlockMissing(ctx context.Context, userID uuid.UUID, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	earned, err := r.EarnedKeys(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(earned))
	for _, k := range earned {
		have[k] = true
	}

	var newlyEarned []string
	for _, key := range keys {
		if have[key] {
			continue
		}
		err := r.db.WithContext(ctx).Create(&domain.UserAchievement{
			UserID:         userID,
			AchievementKey: key,
			EarnedAt:       time.Now(),
		}).Error
		if err != nil {
			if isDuplicateKey(err) {
				continue // кто-то успел параллельно, это не ошибка
			}
			return nil, err
		}
		newlyEarned = append(newlyEarned, key)
	}
	return newlyEarned, nil
}
