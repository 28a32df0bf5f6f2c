package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/progression"
	"github.com/ericogr/ninja-arena/internal/roster"
	"github.com/ericogr/ninja-arena/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to an HTTP status and a client message.
// Unknown errors fall back to 500 with fallback.
func statusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound, constants.ErrProfileNotFound
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrBattleNotYours):
		return http.StatusForbidden, constants.ErrBattleNotYours
	case errors.Is(err, service.ErrInvalidName):
		return http.StatusBadRequest, constants.ErrNameInvalid
	case errors.Is(err, roster.ErrFighterNotFound), errors.Is(err, roster.ErrNoOpponent),
		errors.Is(err, progression.ErrUnknownFighter):
		return http.StatusBadRequest, constants.ErrUnknownFighter
	case errors.Is(err, progression.ErrUnknownWeapon), errors.Is(err, roster.ErrWeaponNotFound):
		return http.StatusBadRequest, constants.ErrUnknownWeapon
	case errors.Is(err, engine.ErrInvalidDifficulty):
		return http.StatusBadRequest, constants.ErrInvalidDifficulty
	case errors.Is(err, engine.ErrInvalidAction):
		return http.StatusBadRequest, constants.ErrInvalidAction
	case errors.Is(err, engine.ErrNotPlayerTurn):
		return http.StatusConflict, constants.ErrNotYourTurn
	case errors.Is(err, engine.ErrSpecialNotCharged):
		return http.StatusConflict, constants.ErrSpecialNotCharged
	case errors.Is(err, engine.ErrBattleResolved):
		return http.StatusConflict, constants.ErrBattleResolved
	case errors.Is(err, engine.ErrNothingPending):
		return http.StatusConflict, constants.ErrNothingPending
	case errors.Is(err, progression.ErrMaxLevel):
		return http.StatusConflict, constants.ErrMaxLevel
	case errors.Is(err, progression.ErrInsufficientCoins):
		return http.StatusConflict, constants.ErrInsufficientCoins
	}
	return http.StatusInternalServerError, fallback
}

func writeError(c *gin.Context, err error, fallback string) {
	status, msg := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		logging.Error(fallback, err, logging.Fields{"path": c.FullPath()})
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}
