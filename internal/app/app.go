// Package app assembles the client core: run loop, credential store,
// auth client, login view model and screen coordinator.
package app

import (
	"log/slog"

	"github.com/espk-mobile/appcore/internal/authapi"
	"github.com/espk-mobile/appcore/internal/config"
	"github.com/espk-mobile/appcore/internal/coordinator"
	"github.com/espk-mobile/appcore/internal/creds"
	"github.com/espk-mobile/appcore/internal/dispatch"
	"github.com/espk-mobile/appcore/internal/login"
)

// App owns the wired client core. Everything stateful runs on Loop.
type App struct {
	Loop        *dispatch.Loop
	Store       *creds.FileStore
	Coordinator *coordinator.Coordinator
	Login       *login.ViewModel
}

// mainGate moves the app to the main screen once sign-in is authorized.
type mainGate struct {
	coord *coordinator.Coordinator
}

func (g *mainGate) Authorized(string) {
	g.coord.Navigate(coordinator.ScreenMain)
}

// New wires the client core from configuration. The caller owns the
// returned App and must Close it.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	store, err := creds.NewFileStore(cfg.DataDir, cfg.LoginCodeLength)
	if err != nil {
		return nil, err
	}

	deviceID, err := store.Prefs().DeviceID()
	if err != nil {
		// A missing device id is not fatal; the header is simply omitted.
		logger.Warn("device id unavailable", "error", err)
	}

	loop := dispatch.NewLoop()
	coord := coordinator.New(loop, logger)
	client := authapi.NewClient(cfg.LoginURL(), deviceID, cfg.RequestTimeout)
	vm := login.New(loop, client, store, &mainGate{coord: coord}, cfg.LoginCodeLength, cfg.MinSecretLength, logger)

	return &App{Loop: loop, Store: store, Coordinator: coord, Login: vm}, nil
}

// Close drains and stops the run loop.
func (a *App) Close() {
	a.Loop.Close()
}
