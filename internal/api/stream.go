package api

import (
	"strings"
	"sync"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/progression"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	frameState = "state"
	frameStep  = "step"
	frameError = "error"

	writeWait = 5 * time.Second
)

// streamFrame is one server-to-client websocket message.
type streamFrame struct {
	Type        string              `json:"type"`
	Events      []engine.Event      `json:"events,omitempty"`
	Snapshot    *engine.Snapshot    `json:"snapshot,omitempty"`
	Progression *progression.Result `json:"progression,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// streamCommand is a client-to-server message: either an action
// ("attack", "special") or an auto-mode toggle.
type streamCommand struct {
	Action string `json:"action"`
	Auto   *bool  `json:"auto"`
}

// wsConn serializes writes; gorilla allows one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) send(f streamFrame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(f)
}

// StreamBattle upgrades to a websocket and paces opponent and auto steps
// server side. The client sends commands and receives every resulting
// event batch.
func (h *Handler) StreamBattle(c *gin.Context) {
	id, ok := battleID(c)
	if !ok {
		return
	}
	account := accountID(c)
	view, err := h.arena.GetBattle(account, id)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	driver, err := h.arena.Driver(account, id)
	if err != nil {
		writeError(c, err, constants.ErrFailedResolveAction)
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldBattleID: id, "error": err.Error()})
		return
	}
	defer conn.Close()
	ws := &wsConn{conn: conn}

	if err := ws.send(streamFrame{Type: frameState, Events: view.Events, Snapshot: &view.Snapshot, Progression: view.Progression}); err != nil {
		return
	}

	run := h.pacer.Start(driver, func(events []engine.Event, err error) {
		if err != nil {
			_, msg := statusFor(err, constants.ErrFailedResolveAction)
			_ = ws.send(streamFrame{Type: frameError, Error: msg})
			return
		}
		res := driver.Last()
		_ = ws.send(streamFrame{Type: frameStep, Events: events, Snapshot: &res.Snapshot, Progression: res.Progression})
	})
	defer run.Stop()

	for {
		var cmd streamCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("websocket closed", logging.Fields{constants.LogFieldBattleID: id, "error": err.Error()})
			}
			return
		}
		frame := h.applyCommand(account, id, cmd)
		if err := ws.send(frame); err != nil {
			return
		}
		run.Kick()
	}
}

func (h *Handler) applyCommand(account, id string, cmd streamCommand) streamFrame {
	if cmd.Auto != nil {
		snap, err := h.arena.SetAuto(account, id, *cmd.Auto)
		if err != nil {
			_, msg := statusFor(err, constants.ErrFailedResolveAction)
			return streamFrame{Type: frameError, Error: msg}
		}
		return streamFrame{Type: frameState, Snapshot: &snap}
	}
	res, err := h.arena.Act(account, id, engine.ActionKind(strings.ToLower(cmd.Action)))
	if err != nil {
		_, msg := statusFor(err, constants.ErrFailedResolveAction)
		return streamFrame{Type: frameError, Error: msg}
	}
	return streamFrame{Type: frameStep, Events: res.Events, Snapshot: &res.Snapshot, Progression: res.Progression}
}
