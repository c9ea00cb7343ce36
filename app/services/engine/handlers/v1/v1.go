// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/chainlab/classroom/app/services/engine/handlers/v1/simgrp"
	"github.com/chainlab/classroom/foundation/events"
	"github.com/chainlab/classroom/foundation/ledger/state"
	"github.com/chainlab/classroom/foundation/web"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	const version = "v1"

	sgh := simgrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", sgh.Events)
	app.Handle(http.MethodGet, version, "/genesis", sgh.Genesis)
	app.Handle(http.MethodGet, version, "/participants", sgh.Participants)
	app.Handle(http.MethodGet, version, "/pool", sgh.Pool)
	app.Handle(http.MethodGet, version, "/chain", sgh.Chain)
	app.Handle(http.MethodGet, version, "/chain/latest", sgh.LatestBlock)
	app.Handle(http.MethodGet, version, "/round", sgh.Round)
	app.Handle(http.MethodGet, version, "/stats", sgh.Stats)
}
