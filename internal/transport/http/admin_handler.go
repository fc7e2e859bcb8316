package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/cache"
	"sidequest/internal/infrastructure/repository"
	"sidequest/internal/infrastructure/storage"
	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	userRepo    *repository.UserRepository
	questRepo   *repository.QuestRepository
	geoRepo     *repository.GeoThinkrRepository
	storage     *storage.ImageStorage
	leaderboard *cache.LeaderboardCache
	log         *logger.Logger
}

func NewAdminHandler(
	ur *repository.UserRepository,
	qr *repository.QuestRepository,
	gr *repository.GeoThinkrRepository,
	st *storage.ImageStorage,
	lb *cache.LeaderboardCache,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		userRepo:    ur,
		questRepo:   qr,
		geoRepo:     gr,
		storage:     st,
		leaderboard: lb,
		log:         log.With("handler", "admin"),
	}
}

// POST /api/v1/admin/award — ручное начисление (или списание) очков
func (h *AdminHandler) Award(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Amount int    `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Юзера можно указать и по ID, и по почте
	var user *domain.User
	var err error
	switch {
	case req.UserID != "":
		uid, parseErr := uuid.Parse(req.UserID)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		user, err = h.userRepo.GetByID(ctx, uid)
	case req.Email != "":
		user, err = h.userRepo.GetByEmail(ctx, req.Email)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	if err := h.userRepo.AdjustPoints(ctx, user.ID, req.Amount); err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientBalance):
			c.JSON(http.StatusConflict, gin.H{"error": "balance cannot go negative"})
		default:
			h.log.Error("manual award failed", "user_id", user.ID, "amount", req.Amount, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award points"})
		}
		return
	}

	if err := h.leaderboard.Invalidate(ctx); err != nil {
		h.log.Warn("failed to invalidate leaderboard cache", "error", err)
	}

	updated, err := h.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balance"})
		return
	}

	h.log.Info("manual award", "admin", c.GetString("userId"), "user_id", user.ID, "amount", req.Amount)
	c.JSON(http.StatusOK, gin.H{"success": true, "points": updated.Points})
}

// POST /api/v1/admin/quests
func (h *AdminHandler) CreateQuest(c *gin.Context) {
	var req struct {
		Title         string  `json:"title" binding:"required"`
		Description   string  `json:"description"`
		IsMultiplayer bool    `json:"is_multiplayer"`
		RewardPoints  int     `json:"reward_points"`
		LocationName  string  `json:"location_name" binding:"required"`
		LocationX     float64 `json:"location_x"`
		LocationY     float64 `json:"location_y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RewardPoints <= 0 {
		req.RewardPoints = 100
	}

	ctx := c.Request.Context()

	loc := &domain.Location{
		ID:   uuid.New(),
		Name: req.LocationName,
		X:    req.LocationX,
		Y:    req.LocationY,
	}
	if err := h.questRepo.CreateLocation(ctx, loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create location"})
		return
	}

	quest := &domain.Quest{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		LocationID:    loc.ID,
		IsMultiplayer: req.IsMultiplayer,
		RewardPoints:  req.RewardPoints,
	}
	if err := h.questRepo.Create(ctx, quest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create quest"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest": quest})
}

// PUT /api/v1/admin/quests/:id
func (h *AdminHandler) UpdateQuest(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		RewardPoints int    `json:"reward_points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	quest, err := h.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quest"})
		return
	}

	if req.Title != "" {
		quest.Title = req.Title
	}
	if req.Description != "" {
		quest.Description = req.Description
	}
	if req.RewardPoints > 0 {
		quest.RewardPoints = req.RewardPoints
	}

	if err := h.questRepo.Update(ctx, quest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update quest"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest": quest})
}

// POST /api/v1/admin/photos — multipart: файл + координаты ответа
func (h *AdminHandler) CreatePhoto(c *gin.Context) {
	var form struct {
		X          float64 `form:"x"`
		Y          float64 `form:"y"`
		Category   string  `form:"category" binding:"required"`
		Difficulty string  `form:"difficulty"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validCategory(form.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	if form.Difficulty == "" {
		form.Difficulty = domain.DifficultyEasy
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	ctx := c.Request.Context()
	photoID := uuid.New()
	ext := path.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("geothinkr/%d/%s%s", time.Now().Year(), photoID, ext)

	url, err := h.storage.Put(ctx, key, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("photo upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}

	photo := &domain.GeoPhoto{
		ID:         photoID,
		ImageURL:   url,
		X:          form.X,
		Y:          form.Y,
		Category:   form.Category,
		Difficulty: form.Difficulty,
		// Verified по умолчанию false — в игру попадет после проверки
	}
	if err := h.geoRepo.CreatePhoto(ctx, photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}

// PUT /api/v1/admin/photos/:id/verify
func (h *AdminHandler) VerifyPhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.geoRepo.SetVerified(c.Request.Context(), photoID, *req.Verified); err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "verified": *req.Verified})
}

func validCategory(category string) bool {
	for _, c := range domain.PhotoCategories {
		if c == category {
			return true
		}
	}
	return false
}
