package api

import (
	"net/http"

	"github.com/ericogr/ninja-arena/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sessionRequest struct {
	Name string `json:"name"`
}

// CreateSession creates an account with a fresh profile and signs the
// caller in.
func (h *Handler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := uuid.NewString()
	p, err := h.arena.CreateProfile(id, req.Name)
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveProfile)
		return
	}
	token, err := h.sessions.Issue(id, p.DisplayName)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateSession)
		return
	}
	h.sessions.setCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": p})
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.arena.GetProfile(accountID(c))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchProfile)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListBattleHistory returns the caller's most recent finished battles.
func (h *Handler) ListBattleHistory(c *gin.Context) {
	records, err := h.repo.GetRecentBattles(accountID(c), queryLimit(c, 20))
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	c.JSON(http.StatusOK, records)
}

type difficultyRequest struct {
	Difficulty int `json:"difficulty"`
}

func (h *Handler) SetDifficulty(c *gin.Context) {
	var req difficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.arena.SetDifficulty(accountID(c), req.Difficulty)
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveProfile)
		return
	}
	c.JSON(http.StatusOK, p)
}

type purchaseRequest struct {
	CharacterID string `json:"character_id" binding:"required"`
	WeaponID    string `json:"weapon_id" binding:"required"`
}

// Purchase buys one upgrade level.
func (h *Handler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	receipt, err := h.arena.Purchase(accountID(c), req.CharacterID, req.WeaponID)
	if err != nil {
		writeError(c, err, constants.ErrFailedSaveProfile)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
