// Package simgrp maintains the group of handlers for the simulation: the
// websocket event surface participants connect to, and read only REST
// access to the current state.
package simgrp

import (
	"context"
	"net/http"

	"github.com/chainlab/classroom/foundation/events"
	"github.com/chainlab/classroom/foundation/ledger/state"
	"github.com/chainlab/classroom/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of simulation endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
	WS    websocket.Upgrader
}

// Genesis returns the simulation parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Participants returns the participant registry, including offline
// participants.
func (h Handlers) Participants(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	participants := h.State.RetrieveParticipants()
	return web.Respond(ctx, w, participants, http.StatusOK)
}

// Pool returns the pending transactions in arrival order.
func (h Handlers) Pool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.RetrievePool()
	return web.Respond(ctx, w, pool, http.StatusOK)
}

// Chain returns the block chain from the genesis block forward.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()
	return web.Respond(ctx, w, chain, http.StatusOK)
}

// LatestBlock returns the block at the tail of the chain.
func (h Handlers) LatestBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block := h.State.RetrieveLatestBlock()
	return web.Respond(ctx, w, block, http.StatusOK)
}

// Round returns the active mining round if one exists.
func (h Handlers) Round(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	round, exists := h.State.RetrieveRound()
	if !exists {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
	return web.Respond(ctx, w, round, http.StatusOK)
}

// Stats returns the aggregate counters.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	stats := h.State.RetrieveStats()
	return web.Respond(ctx, w, stats, http.StatusOK)
}
