package handlers

import (
	"errors"
	"net/http"

	"sidequest/internal/application/usecase"
	"sidequest/internal/domain"
	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GeoThinkrHandler struct {
	geoUC *usecase.GeoThinkrUseCase
	log   *logger.Logger
}

func NewGeoThinkrHandler(uc *usecase.GeoThinkrUseCase, log *logger.Logger) *GeoThinkrHandler {
	return &GeoThinkrHandler{geoUC: uc, log: log.With("handler", "geothinkr")}
}

// GET /api/v1/geothinkr/photo?category=building
func (h *GeoThinkrHandler) RandomPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photo, err := h.geoUC.RandomPhoto(c.Request.Context(), userID, c.Query("category"))
	if err != nil {
		if errors.Is(err, domain.ErrNoPhotosLeft) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no photos left to play"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load photo"})
		return
	}

	// Координаты ответа клиенту не отдаем до завершения раунда
	c.JSON(http.StatusOK, gin.H{
		"id":         photo.ID,
		"image_url":  photo.ImageURL,
		"category":   photo.Category,
		"difficulty": photo.Difficulty,
	})
}

// POST /api/v1/geothinkr/guess
func (h *GeoThinkrHandler) SubmitGuess(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		PhotoID   string  `json:"photo_id" binding:"required"`
		GuessX    float64 `json:"guess_x"`
		GuessY    float64 `json:"guess_y"`
		HintsUsed int     `json:"hints_used"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photoID, err := uuid.Parse(req.PhotoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo_id"})
		return
	}

	result, err := h.geoUC.SubmitGuess(c.Request.Context(), usecase.GuessInput{
		UserID:    userID,
		PhotoID:   photoID,
		GuessX:    req.GuessX,
		GuessY:    req.GuessY,
		HintsUsed: req.HintsUsed,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidGuess):
			c.JSON(http.StatusBadRequest, gin.H{"error": "guess is out of map bounds"})
		case errors.Is(err, domain.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		case errors.Is(err, domain.ErrAlreadyPlayed):
			c.JSON(http.StatusConflict, gin.H{"error": "already played"})
		default:
			h.log.Error("guess submission failed", "photo_id", photoID, "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit guess"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/v1/geothinkr/history
func (h *GeoThinkrHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attempts, err := h.geoUC.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": attempts})
}
