package handlers

import (
	"errors"
	"net/http"

	"sidequest/internal/application/usecase"
	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/repository"
	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestHandler struct {
	questRepo *repository.QuestRepository
	questUC   *usecase.QuestUseCase
	log       *logger.Logger
}

func NewQuestHandler(qr *repository.QuestRepository, uc *usecase.QuestUseCase, log *logger.Logger) *QuestHandler {
	return &QuestHandler{
		questRepo: qr,
		questUC:   uc,
		log:       log.With("handler", "quest"),
	}
}

// GET /api/v1/quests
func (h *QuestHandler) List(c *gin.Context) {
	quests, err := h.questRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

// GET /api/v1/quests/:id
func (h *QuestHandler) GetOne(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quest, err := h.questRepo.GetByID(c.Request.Context(), questID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quest"})
		return
	}

	progress, err := h.questRepo.GetProgress(c.Request.Context(), userID, questID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}
	completions, err := h.questRepo.CountCompletions(c.Request.Context(), questID)
	if err != nil {
		h.log.Error("failed to count completions", "quest_id", questID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest":       quest,
		"progress":    progress,
		"completions": completions,
	})
}

// POST /api/v1/quests/:id/complete
func (h *QuestHandler) Complete(c *gin.Context) {
	questID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Completed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true"})
		return
	}

	result, err := h.questUC.Complete(c.Request.Context(), userID, questID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, domain.ErrQuestAlreadyClaimed):
			// Нормальный исход гонки, а не сбой
			c.JSON(http.StatusConflict, gin.H{"error": "quest already claimed"})
		default:
			h.log.Error("quest completion failed", "quest_id", questID, "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete quest"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
