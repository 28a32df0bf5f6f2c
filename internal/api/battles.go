package api

import (
	"net/http"
	"strings"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type startBattleRequest struct {
	FighterID  string `json:"fighter_id" binding:"required"`
	OpponentID string `json:"opponent_id"`
	Difficulty int    `json:"difficulty"`
}

// StartBattle creates a battle for the caller, or a guest battle when no
// session is present.
func (h *Handler) StartBattle(c *gin.Context) {
	var req startBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.arena.StartBattle(service.StartRequest{
		AccountID:  accountID(c),
		FighterID:  req.FighterID,
		OpponentID: req.OpponentID,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		writeError(c, err, constants.ErrFailedStartBattle)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	view, err := h.arena.GetBattle(accountID(c), id)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AbandonBattle drops the battle without progression.
func (h *Handler) AbandonBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	if err := h.arena.Abandon(accountID(c), id); err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.Status(http.StatusNoContent)
}

type actionRequest struct {
	Action string `json:"action" binding:"required"`
}

// BattleAction performs a manual attack or special.
func (h *Handler) BattleAction(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.arena.Act(accountID(c), id, engine.ActionKind(strings.ToLower(req.Action)))
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AdvanceBattle runs the pending opponent or auto step immediately. Clients
// pace the call themselves.
func (h *Handler) AdvanceBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	res, err := h.arena.Advance(accountID(c), id)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.JSON(http.StatusOK, res)
}

type autoRequest struct {
	On *bool `json:"on" binding:"required"`
}

func (h *Handler) SetAuto(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	var req autoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.arena.SetAuto(accountID(c), id, *req.On)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func battleID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("battleID"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id, true
}
