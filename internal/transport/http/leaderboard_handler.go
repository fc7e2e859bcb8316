package handlers

import (
	"errors"
	"net/http"

	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const leaderboardSize = 20

type LeaderboardHandler struct {
	userRepo    *repository.UserRepository
	leaderboard *cache.LeaderboardCache
	log         *logger.Logger
}

func NewLeaderboardHandler(ur *repository.UserRepository, lb *cache.LeaderboardCache, log *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		userRepo:    ur,
		leaderboard: lb,
		log:         log.With("handler", "leaderboard"),
	}
}

// GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.leaderboard.Get(ctx)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
		return
	}
	if !errors.Is(err, redis.Nil) {
		// Редис лег — идем в БД, это не повод отдавать 500
		h.log.Warn("leaderboard cache read failed", "error", err)
	}

	users, err := h.userRepo.TopByPoints(ctx, leaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	entries = make([]cache.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, cache.LeaderboardEntry{
			Username: u.Username,
			Points:   u.Points,
			AvatarID: u.AvatarID,
		})
	}

	if err := h.leaderboard.Set(ctx, entries); err != nil {
		h.log.Warn("leaderboard cache write failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
