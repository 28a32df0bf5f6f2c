package api

import (
	"net/http"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/pacing"
	"github.com/ericogr/ninja-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HistoryRepo is the read side the handlers need beyond the arena.
type HistoryRepo interface {
	GetTopProfiles(limit int) ([]game.Profile, error)
	GetRecentBattles(accountID string, limit int) ([]game.BattleRecord, error)
}

// Handler groups all HTTP handlers.
type Handler struct {
	arena    *service.Arena
	repo     HistoryRepo
	sessions *Sessions
	pacer    *pacing.Pacer
	upgrader websocket.Upgrader
}

func NewHandler(arena *service.Arena, repo HistoryRepo, sessions *Sessions, pacer *pacing.Pacer) *Handler {
	if pacer == nil {
		pacer = pacing.New(pacing.Clock(), pacing.DefaultDelays())
	}
	return &Handler{
		arena:    arena,
		repo:     repo,
		sessions: sessions,
		pacer:    pacer,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			// the API is served same-origin or behind a proxy that checks it
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Register mounts every route under the /api prefix.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group(constants.RouteAPIPrefix)
	{
		api.GET(constants.RouteFighters, h.ListFighters)
		api.GET(constants.RouteWeapons, h.ListWeapons)
		api.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		api.GET(constants.RouteVersion, Version)
		api.POST(constants.RouteSession, h.CreateSession)

		protected := api.Group("")
		protected.Use(h.sessions.AuthRequired())
		protected.GET(constants.RouteProfile, h.GetProfile)
		protected.GET(constants.RouteProfileBattles, h.ListBattleHistory)
		protected.POST(constants.RouteProfileDifficulty, h.SetDifficulty)
		protected.POST(constants.RouteShopPurchase, h.Purchase)

		battles := api.Group("")
		battles.Use(h.sessions.AuthOptional())
		battles.POST(constants.RouteBattles, h.StartBattle)
		battles.GET(constants.RouteBattleByID, h.GetBattle)
		battles.DELETE(constants.RouteBattleByID, h.AbandonBattle)
		battles.POST(constants.RouteBattleAction, h.BattleAction)
		battles.POST(constants.RouteBattleAdvance, h.AdvanceBattle)
		battles.POST(constants.RouteBattleAuto, h.SetAuto)
		battles.GET(constants.RouteBattleStream, h.StreamBattle)
	}
}
