// Package state is the core API for the simulation and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/chainlab/classroom/foundation/ledger/database"
	"github.com/chainlab/classroom/foundation/ledger/genesis"
)

// EventHandler defines a function that is called when events occur in the
// processing of commands and mining rounds.
type EventHandler func(v string, args ...any)

// Broadcaster defines a function that delivers a named payload to every
// connected session. Delivery is fire and forget; a failed delivery to one
// session never affects processing.
type Broadcaster func(name string, data any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for the time driven parts of mining:
// the periodic sweep, the round deadline, and the post mine retry.
type Worker interface {
	Shutdown()
	SignalStartRound()
	SignalRetryRound()
	SignalRoundTimeout(roundID string, deadline time.Time)
}

// =============================================================================

// Round represents an active mining round: the period during which one
// miner is authorized to produce the next block.
type Round struct {
	ID          string    `json:"id"`
	Miner       string    `json:"miner"`
	BlockNumber uint64    `json:"block_number"`
	Deadline    time.Time `json:"deadline"`
}

// =============================================================================

// Config represents the configuration required to start the state.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
	Broadcast Broadcaster
}

// State manages the simulation ledger. Every command and every timer effect
// runs under the single mutex, so each mutation is indivisible with respect
// to the ledger.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	db        *database.Database
	evHandler EventHandler
	broadcast Broadcaster

	round *Round

	Worker Worker
}

// New constructs the state for managing the simulation ledger.
func New(cfg Config) *State {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	broadcast := func(name string, data any) {
		if cfg.Broadcast != nil {
			cfg.Broadcast(name, data)
		}
	}

	state := State{
		genesis:   cfg.Genesis,
		db:        database.New(cfg.Genesis),
		evHandler: ev,
		broadcast: broadcast,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the time driven operations.

	return &state
}

// Shutdown cleanly brings the simulation down.
func (s *State) Shutdown() {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}
}

// =============================================================================

// Join registers a session as a participant. The nickname must be unique
// among online participants; offline duplicates may exist.
func (s *State) Join(sessionID string, nickname string, role database.Role) (database.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return database.Participant{}, ErrInvalidRole
	}

	if _, exists := s.db.OnlineParticipantByNickname(nickname); exists {
		return database.Participant{}, ErrNicknameTaken
	}

	participant := s.db.AddParticipant(sessionID, nickname, role)

	s.evHandler("state: join: nickname[%s] role[%s]", nickname, role)
	s.broadcast("participant-joined", ParticipantJoined{
		Participant: participant,
		Snapshot:    s.snapshot(),
	})

	return participant, nil
}

// Disconnect marks the session's participant offline. The record is never
// deleted. An assigned miner that disconnects is not notified; its round
// simply times out.
func (s *State) Disconnect(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, exists := s.db.SetOffline(sessionID)
	if !exists {
		return
	}

	s.evHandler("state: disconnect: nickname[%s]", participant.Nickname)
	s.broadcast("participant-left", ParticipantLeft{
		Participant: participant,
		Snapshot:    s.snapshot(),
	})
}

// =============================================================================

// snapshot assembles the full current state clients re-sync from on every
// broadcast. Callers must hold the state mutex.
func (s *State) snapshot() Snapshot {
	return Snapshot{
		Participants: s.db.CopyParticipants(),
		Pool:         s.db.CopyPool(),
		LatestBlock:  s.db.LatestBlock(),
		Stats:        s.db.Stats(),
	}
}
