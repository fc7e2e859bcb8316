package usecase

import (
	"context"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	"sidequest/pkg/logger"

	"github.com/google/uuid"
)

type GeoThinkrUseCase struct {
	geoRepo     *repository.GeoThinkrRepository
	achRepo     *repository.AchievementRepository
	leaderboard *cache.LeaderboardCache
	log         *logger.Logger

	mapWidth  float64
	mapHeight float64
}

func NewGeoThinkrUseCase(
	gr *repository.GeoThinkrRepository,
	ar *repository.AchievementRepository,
	lb *cache.LeaderboardCache,
	log *logger.Logger,
	mapWidth, mapHeight float64,
) *GeoThinkrUseCase {
	return &GeoThinkrUseCase{
		geoRepo:     gr,
		achRepo:     ar,
		leaderboard: lb,
		log:         log.With("usecase", "geothinkr"),
		mapWidth:    mapWidth,
		mapHeight:   mapHeight,
	}
}

type GuessInput struct {
	UserID    uuid.UUID
	PhotoID   uuid.UUID
	GuessX    float64
	GuessY    float64
	HintsUsed int
}

type GuessResult struct {
	Distance        float64  `json:"distance"`
	Tier            string   `json:"tier"`
	BasePoints      int      `json:"base_points"`
	FinalPoints     int      `json:"final_points"`
	TargetX         float64  `json:"target_x"`
	TargetY         float64  `json:"target_y"`
	NewAchievements []string `json:"new_achievements"`
}

// RandomPhoto отдает случайное подтвержденное фото, которое юзер еще не играл
func (uc *GeoThinkrUseCase) RandomPhoto(ctx context.Context, userID uuid.UUID, category string) (*domain.GeoPhoto, error) {
	return uc.geoRepo.RandomUnplayedPhoto(ctx, userID, category)
}

func (uc *GeoThinkrUseCase) History(ctx context.Context, userID uuid.UUID) ([]domain.GeoAttempt, error) {
	return uc.geoRepo.HistoryDesc(ctx, userID)
}

// SubmitGuess — полный раунд GeoThinkr: проверка дубля, подсчет очков,
// запись в журнал с начислением и пересчет ачивок.
func (uc *GeoThinkrUseCase) SubmitGuess(ctx context.Context, in GuessInput) (*GuessResult, error) {
	if in.HintsUsed < 0 ||
		in.GuessX < 0 || in.GuessX > uc.mapWidth ||
		in.GuessY < 0 || in.GuessY > uc.mapHeight {
		return nil, domain.ErrInvalidGuess
	}

	photo, err := uc.geoRepo.GetPhoto(ctx, in.PhotoID)
	if err != nil {
		return nil, err
	}
	if !photo.Verified {
		// Неподтвержденные фото для игрока не существуют
		return nil, domain.ErrPhotoNotFound
	}

	// Ранний выход для повторной отправки. Это оптимизация: настоящий
	// арбитр дублей — уникальность (user_id, photo_id) при вставке
	played, err := uc.geoRepo.HasPlayed(ctx, in.UserID, in.PhotoID)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, domain.ErrAlreadyPlayed
	}

	score := Score(in.GuessX, in.GuessY, photo.X, photo.Y, photo.Difficulty, in.HintsUsed)

	attempt := &domain.GeoAttempt{
		UserID:    in.UserID,
		PhotoID:   in.PhotoID,
		Distance:  score.Distance,
		Tier:      score.Tier,
		Points:    score.FinalPoints,
		HintsUsed: in.HintsUsed,
	}
	if err := uc.geoRepo.RecordAttemptAndAward(ctx, attempt); err != nil {
		return nil, err
	}

	if score.FinalPoints > 0 {
		if err := uc.leaderboard.Invalidate(ctx); err != nil {
			uc.log.Warn("failed to invalidate leaderboard cache", "error", err)
		}
	}

	newAchievements, err := uc.evaluateAchievements(ctx, in.UserID, *attempt)
	if err != nil {
		// Попытка уже засчитана и очки начислены — ответ игроку важнее,
		// ачивки догонятся на следующем раунде
		uc.log.Error("achievement evaluation failed", "user_id", in.UserID, "error", err)
		newAchievements = nil
	}

	return &GuessResult{
		Distance:        score.Distance,
		Tier:            score.Tier,
		BasePoints:      score.BasePoints,
		FinalPoints:     score.FinalPoints,
		TargetX:         photo.X,
		TargetY:         photo.Y,
		NewAchievements: newAchievements,
	}, nil
}

func (uc *GeoThinkrUseCase) evaluateAchievements(ctx context.Context, userID uuid.UUID, latest domain.GeoAttempt) ([]string, error) {
	history, err := uc.geoRepo.HistoryAsc(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.geoRepo.PlayedCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	qualified := QualifiedAchievements(history, latest, categories)
	return uc.achRepo.UnlockMissing(ctx, userID, qualified)
}
