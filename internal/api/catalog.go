package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/version"

	"github.com/gin-gonic/gin"
)

// ListFighters returns the roster in catalog order.
func (h *Handler) ListFighters(c *gin.Context) {
	c.JSON(http.StatusOK, h.arena.Catalog().List())
}

// ListWeapons returns the weapon table and the upgrade cap.
func (h *Handler) ListWeapons(c *gin.Context) {
	cat := h.arena.Catalog()
	c.JSON(http.StatusOK, gin.H{"weapons": cat.Weapons(), "max_level": cat.MaxLevel()})
}

type leaderboardEntry struct {
	DisplayName   string `json:"display_name"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	BestStreak    int    `json:"best_streak"`
	LifetimeCoins int    `json:"lifetime_coins"`
	Achievements  int    `json:"achievements"`
}

// ListLeaderboard returns the top profiles by wins (desc), limited to top 10 by default.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	limit := queryLimit(c, 10)
	profiles, err := h.repo.GetTopProfiles(limit)
	if err != nil {
		writeError(c, err, constants.ErrFailedFetchLeaderboard)
		return
	}
	out := make([]leaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, leaderboardEntry{
			DisplayName:   p.DisplayName,
			Wins:          p.Stats.Wins,
			Losses:        p.Stats.Losses,
			BestStreak:    p.Stats.BestStreak,
			LifetimeCoins: p.LifetimeCoins,
			Achievements:  len(p.Achievements),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}

// queryLimit reads ?limit=N within 1..100.
func queryLimit(c *gin.Context, def int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return def
}
