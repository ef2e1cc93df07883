package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/espk-mobile/appcore/internal/app"
	"github.com/espk-mobile/appcore/internal/config"
	"github.com/espk-mobile/appcore/internal/coordinator"
	"github.com/espk-mobile/appcore/internal/logging"
	"github.com/espk-mobile/appcore/internal/login"
)

// Headless driver for the client core: attempts auto sign-in from stored
// credentials and reports the resulting screen. The real UI replaces
// this entry point on device.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	screens := a.Coordinator.Subscribe()
	states := a.Login.Subscribe()

	logger.Info("starting",
		"screen", a.Coordinator.Current().String(),
		"background", string(coordinator.BackgroundFor(a.Coordinator.Current())))

	if !a.Store.HasValid() {
		logger.Info("no stored credentials; sign in through the app UI")
		return
	}

	a.Login.TrySignInAutomatically()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case screen := <-screens:
			logger.Info("screen changed",
				"screen", screen.String(),
				"background", string(coordinator.BackgroundFor(screen)))
			if screen == coordinator.ScreenMain {
				logger.Info("signed in")
				return
			}
		case s := <-states:
			if s.Phase == login.PhaseFailed {
				logger.Warn("sign-in failed", "reason", s.ErrorMessage)
				return
			}
		case sig := <-sigCh:
			logger.Info("shutdown signal received", "signal", sig.String())
			return
		}
	}
}
