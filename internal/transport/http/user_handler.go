package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/repository"
	"sidequest/internal/infrastructure/storage"
	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20 // 5 MB

type UserHandler struct {
	userRepo *repository.UserRepository
	achRepo  *repository.AchievementRepository
	geoRepo  *repository.GeoThinkrRepository
	storage  *storage.ImageStorage
	log      *logger.Logger
}

func NewUserHandler(
	ur *repository.UserRepository,
	ar *repository.AchievementRepository,
	gr *repository.GeoThinkrRepository,
	st *storage.ImageStorage,
	log *logger.Logger,
) *UserHandler {
	return &UserHandler{
		userRepo: ur,
		achRepo:  ar,
		geoRepo:  gr,
		storage:  st,
		log:      log.With("handler", "user"),
	}
}

// GET /api/v1/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	earned, err := h.achRepo.ListEarned(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to load earned achievements", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	attempts, err := h.geoRepo.HistoryDesc(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to load game history", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"username":     user.Username,
		"points":       user.Points,
		"avatar_id":    user.AvatarID,
		"avatar_url":   user.AvatarURL,
		"role":         user.Role,
		"achievements": earned,
		"games_played": len(attempts),
	})
}

// PUT /api/v1/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Username string `json:"username" binding:"required,min=2,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userRepo.UpdateUsername(c.Request.Context(), userID, req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/me/avatar
// Либо JSON {"avatar_id": N} с пресетом, либо multipart с картинкой
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.uploadAvatar(c)
		return
	}

	var req struct {
		AvatarID int `json:"avatar_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// Проверяем диапазон (у нас 10 пресетов)
	if req.AvatarID < 1 || req.AvatarID > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar_id must be between 1 and 10"})
		return
	}

	if err := h.userRepo.UpdateAvatar(c.Request.Context(), userID, req.AvatarID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatar_id": req.AvatarID})
}

func (h *UserHandler) uploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be under 5MB"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpeg and png are allowed"})
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

	ext := path.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("avatars/%s%s", userID, ext)

	url, err := h.storage.Put(c.Request.Context(), key, data, contentType)
	if err != nil {
		h.log.Error("avatar upload failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar"})
		return
	}

	if err := h.userRepo.UpdateAvatarURL(c.Request.Context(), userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatar_url": url})
}

// GET /api/v1/achievements — публичный каталог бейджей
func (h *UserHandler) AchievementCatalog(c *gin.Context) {
	catalog, err := h.achRepo.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load achievements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": catalog})
}
