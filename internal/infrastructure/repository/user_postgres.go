package repository

import (
	"context"
	"errors"

	"sidequest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// awardTx — единственный способ начислить очки: один атомарный UPDATE,
// без чтения баланса на стороне приложения, иначе под конкурентными
// начислениями теряются обновления. Принимает и открытую транзакцию.
func awardTx(tx *gorm.DB, userID uuid.UUID, amount int) error {
	result := tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) IncrementPoints(ctx context.Context, userID uuid.UUID, amount int) error {
	return awardTx(r.db.WithContext(ctx), userID, amount)
}

// AdjustPoints — для ручных начислений админом, amount может быть отрицательным.
// Условие в WHERE не дает увести баланс в минус.
func (r *UserRepository) AdjustPoints(ctx context.Context, userID uuid.UUID, amount int) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND points + ? >= 0", userID, amount).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо юзера нет, либо не хватает баланса
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.User{}).
			Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("username", username).Error
}

// Обновляем только AvatarID
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarID int) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"avatar_id": avatarID, "avatar_url": ""}).Error
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error
}

func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("points desc").
		Limit(limit).
		Find(&users).Error
	return users, err
}
