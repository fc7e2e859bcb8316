package repository

import (
	"context"
	"errors"
	"time"

	"sidequest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) Create(ctx context.Context, quest *domain.Quest) error {
	return r.db.WithContext(ctx).Create(quest).Error
}

// Update правит только редактируемые админом поля. winner_id сюда
// намеренно не входит: победитель пишется один раз в CompleteMultiplayer,
// и правка квеста не должна его затирать.
func (r *QuestRepository) Update(ctx context.Context, quest *domain.Quest) error {
	return r.db.WithContext(ctx).Model(&domain.Quest{}).
		Where("id = ?", quest.ID).
		Updates(map[string]interface{}{
			"title":         quest.Title,
			"description":   quest.Description,
			"reward_points": quest.RewardPoints,
		}).Error
}

func (r *QuestRepository) CreateLocation(ctx context.Context, loc *domain.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *QuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quest, error) {
	var quest domain.Quest
	err := r.db.WithContext(ctx).Preload("Location").Where("id = ?", id).First(&quest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) List(ctx context.Context) ([]domain.Quest, error) {
	var quests []domain.Quest
	err := r.db.WithContext(ctx).Preload("Location").
		Order("created_at desc").
		Find(&quests).Error
	return quests, err
}

func (r *QuestRepository) GetProgress(ctx context.Context, userID, questID uuid.UUID) (*domain.Progress, error) {
	var progress domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quest_id = ?", userID, questID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *QuestRepository) ListProgress(ctx context.Context, userID uuid.UUID) ([]domain.Progress, error) {
	var rows []domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *QuestRepository) CountCompletions(ctx context.Context, questID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Progress{}).
		Where("quest_id = ? AND completed = ?", questID, true).
		Count(&count).Error
	return count, err
}

// markCompletedTx апсертит прогресс внутри уже открытой транзакции и
// возвращает true, только если квест завершен именно этим вызовом.
// ON CONFLICT DO NOTHING вместо голого INSERT: ошибка дубликата внутри
// транзакции откатила бы ее целиком.
// Гонку двух первых завершений решает составной PK (user_id, quest_id).
func markCompletedTx(tx *gorm.DB, userID, questID uuid.UUID) (bool, error) {
	now := time.Now()
	progress := &domain.Progress{
		UserID:      userID,
		QuestID:     questID,
		Completed:   true,
		CompletedAt: &now,
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(progress)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Строка уже есть: закрываем, только если еще не закрыта
	res := tx.Model(&domain.Progress{}).
		Where("user_id = ? AND quest_id = ? AND completed = ?", userID, questID, false).
		Updates(map[string]interface{}{"completed": true, "completed_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteSolo закрывает обычный квест: прогресс и начисление коммитятся
// одной транзакцией, чтобы сбой выплаты не оставил завершенный квест
// без награды. Повтор — no-op без второго начисления.
func (r *QuestRepository) CompleteSolo(ctx context.Context, userID, questID uuid.UUID, reward int) (bool, error) {
	var newly bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		newly, txErr = markCompletedTx(tx, userID, questID)
		if txErr != nil || !newly {
			return txErr
		}
		return awardTx(tx, userID, reward)
	})
	if err != nil {
		return false, err
	}
	return newly, nil
}

// CompleteMultiplayer — атомарный розыгрыш мультиплеерного квеста.
// Условный UPDATE по winner_id IS NULL и есть арбитр гонки: кто успел,
// тот и выиграл, все остальные получают 0 затронутых строк.
// Прогресс, победитель и выплата коммитятся вместе: нельзя увидеть
// победителя без выплаты и выплату без победителя.
// Проигравший сохраняет прогресс, но очков не получает.
func (r *QuestRepository) CompleteMultiplayer(ctx context.Context, userID, questID uuid.UUID, reward int) (newly, claimed bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		newly, txErr = markCompletedTx(tx, userID, questID)
		if txErr != nil || !newly {
			return txErr
		}

		result := tx.Model(&domain.Quest{}).
			Where("id = ? AND winner_id IS NULL", questID).
			Update("winner_id", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Гонка проиграна — фиксируем прогресс без выплаты
			return nil
		}

		claimed = true
		return awardTx(tx, userID, reward)
	})
	if err != nil {
		return false, false, err
	}
	return newly, claimed, nil
}
