// Package coordinator selects the top-level screen and the background
// style the presentation layer should render behind it.
package coordinator

import (
	"log/slog"

	"github.com/espk-mobile/appcore/internal/dispatch"
)

// Screen is a top-level navigable UI state.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenLogin
	ScreenMain
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenLogin:
		return "login"
	case ScreenMain:
		return "main"
	default:
		return "unknown"
	}
}

// BackgroundStyle names one of the fixed background presentations.
type BackgroundStyle string

const (
	BackgroundWarmGradient BackgroundStyle = "warm_gradient"
	BackgroundCoolGradient BackgroundStyle = "cool_gradient"
	BackgroundPlain        BackgroundStyle = "plain"
)

// BackgroundFor maps each screen to its background style. Pure; the
// presentation layer consults it after every transition.
func BackgroundFor(screen Screen) BackgroundStyle {
	switch screen {
	case ScreenWelcome:
		return BackgroundWarmGradient
	case ScreenLogin:
		return BackgroundCoolGradient
	case ScreenMain:
		return BackgroundPlain
	default:
		return BackgroundPlain
	}
}

// Coordinator is the screen state machine. State is rebuilt fresh at
// process start and always begins at the welcome screen; any screen is
// reachable from any other.
type Coordinator struct {
	loop   *dispatch.Loop
	logger *slog.Logger

	// Loop-confined.
	current Screen
	subs    []chan Screen
}

// New builds a coordinator positioned on the welcome screen.
func New(loop *dispatch.Loop, logger *slog.Logger) *Coordinator {
	return &Coordinator{loop: loop, logger: logger, current: ScreenWelcome}
}

// Navigate unconditionally switches the current screen.
func (c *Coordinator) Navigate(to Screen) {
	c.loop.Post(func() {
		c.logger.Info("navigate", "from", c.current.String(), "to", to.String())
		c.current = to
		for _, ch := range c.subs {
			ch <- to
		}
	})
}

// Current returns the displayed screen.
func (c *Coordinator) Current() Screen {
	var s Screen
	c.loop.Do(func() { s = c.current })
	return s
}

// Subscribe registers a channel that receives every screen transition.
func (c *Coordinator) Subscribe() <-chan Screen {
	ch := make(chan Screen, 8)
	c.loop.Do(func() {
		c.subs = append(c.subs, ch)
	})
	return ch
}
