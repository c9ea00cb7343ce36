package simgrp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chainlab/classroom/foundation/events"
	"github.com/chainlab/classroom/foundation/ledger/database"
	"github.com/chainlab/classroom/foundation/ledger/state"
	"github.com/chainlab/classroom/foundation/web"
	"github.com/gorilla/websocket"
)

// joinSuccess is the unicast payload acknowledging a successful join.
type joinSuccess struct {
	Participant database.Participant `json:"participant"`
	Snapshot    state.Snapshot       `json:"snapshot"`
}

// Events handles a web socket for the life of a participant session. The
// write side delivers the session's unicast and broadcast messages; the
// read side decodes inbound commands and applies them to the state. The
// trace id doubles as the session id.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}
	sessionID := v.TraceID

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(sessionID)
	defer h.Evts.Release(sessionID)

	// A session that never joined has no participant record; Disconnect
	// is a no-op then. Otherwise this flips the participant offline and
	// broadcasts participant-left.
	defer h.State.Disconnect(sessionID)

	h.Log.Infow("session connected", "traceid", sessionID, "remoteaddr", r.RemoteAddr)
	defer h.Log.Infow("session closed", "traceid", sessionID)

	// The write loop owns every write on the connection: outbound
	// messages from the session channel plus the keep alive pings.
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, wd := <-ch:
				if !wd {
					c.Close()
					return
				}
				if err := c.WriteJSON(msg); err != nil {
					c.Close()
					return
				}

			case <-ticker.C:
				if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					c.Close()
					return
				}

			case <-done:
				return
			}
		}
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return nil
		}

		if !h.dispatch(sessionID, data) {
			return nil
		}
	}
}

// dispatch decodes an inbound command and applies it to the state. All
// validation failures are reported only to the originating session; the
// successful outcomes reach everyone through the state broadcasts. The
// return value reports whether the session should stay open.
func (h Handlers) dispatch(sessionID string, data []byte) bool {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.sendError(sessionID, "command-error", fmt.Errorf("malformed command: %w", err))
		return true
	}

	switch cmd.Action {
	case "join":
		var jc joinCommand
		if err := unmarshalPayload(data, &jc); err != nil {
			h.sendError(sessionID, "join-error", err)
			return true
		}

		participant, err := h.State.Join(sessionID, jc.Nickname, database.Role(jc.Role))
		if err != nil {
			h.sendError(sessionID, "join-error", err)
			return true
		}

		h.Log.Infow("join", "traceid", sessionID, "nickname", jc.Nickname, "role", jc.Role)
		h.Evts.Send(sessionID, events.Message{Name: "join-success", Data: joinSuccess{
			Participant: participant,
			Snapshot:    h.State.RetrieveSnapshot(),
		}})

	case "submit-transaction":
		var sc submitCommand
		if err := unmarshalPayload(data, &sc); err != nil {
			h.sendError(sessionID, "transaction-error", err)
			return true
		}

		if _, err := h.State.SubmitTransaction(sessionID, sc.To, sc.Amount, sc.Fee); err != nil {
			h.sendError(sessionID, "transaction-error", err)
			return true
		}

	case "mine-block":
		if _, err := h.State.MineBlock(sessionID); err != nil {
			h.sendError(sessionID, "mining-error", err)
			return true
		}

	case "disconnect":
		return false

	default:
		h.sendError(sessionID, "command-error", fmt.Errorf("unknown action %q", cmd.Action))
	}

	return true
}

// sendError reports a failed command to the originating session only.
func (h Handlers) sendError(sessionID string, name string, err error) {
	h.Log.Infow("command failed", "traceid", sessionID, "event", name, "message", err)
	h.Evts.Send(sessionID, events.Message{Name: name, Data: ackError{Message: err.Error()}})
}

// unmarshalPayload decodes a command payload and validates it.
func unmarshalPayload(data []byte, val interface{ Validate() error }) error {
	if err := json.Unmarshal(data, val); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	return val.Validate()
}
