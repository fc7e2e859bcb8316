package usecase

import (
	"context"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	"sidequest/pkg/logger"

	"github.com/google/uuid"
)

type QuestUseCase struct {
	questRepo   *repository.QuestRepository
	leaderboard *cache.LeaderboardCache
	log         *logger.Logger
}

func NewQuestUseCase(
	qr *repository.QuestRepository,
	lb *cache.LeaderboardCache,
	log *logger.Logger,
) *QuestUseCase {
	return &QuestUseCase{
		questRepo:   qr,
		leaderboard: lb,
		log:         log.With("usecase", "quest"),
	}
}

type CompleteResult struct {
	Success bool `json:"success"`
	Claimed bool `json:"claimed"`
}

// Complete закрывает квест для юзера.
// Обычный квест: первое завершение приносит reward_points, повтор — no-op.
// Мультиплеерный: награду забирает только победитель гонки за winner_id,
// проигравший получает ErrQuestAlreadyClaimed (для хендлера это 409, не сбой).
// И прогресс, и начисление репозиторий коммитит одной транзакцией: сбой до
// выплаты откатывает и отметку о завершении, повтор начнет с чистого листа.
func (uc *QuestUseCase) Complete(ctx context.Context, userID, questID uuid.UUID) (*CompleteResult, error) {
	quest, err := uc.questRepo.GetByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	if !quest.IsMultiplayer {
		newly, err := uc.questRepo.CompleteSolo(ctx, userID, questID, quest.RewardPoints)
		if err != nil {
			return nil, err
		}
		if newly {
			uc.invalidateLeaderboard(ctx)
		}
		return &CompleteResult{Success: true, Claimed: false}, nil
	}

	// Прочитанный выше quest.WinnerID тут НЕ авторитетен — между чтением
	// и этим вызовом победитель мог появиться. Решает условный UPDATE.
	newly, claimed, err := uc.questRepo.CompleteMultiplayer(ctx, userID, questID, quest.RewardPoints)
	if err != nil {
		return nil, err
	}
	if !newly {
		// Уже завершал раньше — идемпотентный успех без начислений
		return &CompleteResult{Success: true, Claimed: false}, nil
	}
	if !claimed {
		// Прогресс записан, но гонка проиграна
		return nil, domain.ErrQuestAlreadyClaimed
	}

	uc.log.Info("multiplayer quest claimed",
		"quest_id", questID, "winner_id", userID, "reward", quest.RewardPoints)
	uc.invalidateLeaderboard(ctx)
	return &CompleteResult{Success: true, Claimed: true}, nil
}

func (uc *QuestUseCase) invalidateLeaderboard(ctx context.Context) {
	if err := uc.leaderboard.Invalidate(ctx); err != nil {
		uc.log.Warn("failed to invalidate leaderboard cache", "error", err)
	}
}
