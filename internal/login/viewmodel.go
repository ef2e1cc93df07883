// Package login holds the sign-in view model: local validation, the
// remote login call, credential persistence, and the observable state the
// login screen renders.
package login

import (
	"context"
	"log/slog"

	"github.com/espk-mobile/appcore/internal/authapi"
	"github.com/espk-mobile/appcore/internal/creds"
	"github.com/espk-mobile/appcore/internal/dispatch"
)

// ViewModel drives a sign-in attempt through
// idle → validating → submitting → authorized|failed.
// All state lives on the run loop; public methods may be called from any
// goroutine and schedule their work there.
type ViewModel struct {
	loop   *dispatch.Loop
	auth   authapi.Service
	store  creds.Store
	gate   Gate
	logger *slog.Logger

	codeLen   int
	minSecret int

	// Loop-confined from here down.
	state Snapshot
	subs  []chan Snapshot
}

// New builds a view model. gate is notified after a fully completed
// sign-in; it is invoked on the run loop.
func New(loop *dispatch.Loop, auth authapi.Service, store creds.Store, gate Gate, codeLen, minSecret int, logger *slog.Logger) *ViewModel {
	return &ViewModel{
		loop:      loop,
		auth:      auth,
		store:     store,
		gate:      gate,
		logger:    logger,
		codeLen:   codeLen,
		minSecret: minSecret,
	}
}

// Subscribe registers a state channel. Every mutation publishes a
// snapshot; subscribers must drain promptly since delivery happens on the
// run loop.
func (vm *ViewModel) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 32)
	vm.loop.Do(func() {
		vm.subs = append(vm.subs, ch)
	})
	return ch
}

// State returns a copy of the current state.
func (vm *ViewModel) State() Snapshot {
	var s Snapshot
	vm.loop.Do(func() { s = vm.state })
	return s
}

// Reset returns the view model to a blank idle state. Called when the
// login screen appears.
func (vm *ViewModel) Reset() {
	vm.loop.Post(func() {
		if vm.state.Loading {
			return
		}
		vm.setState(Snapshot{Phase: PhaseIdle})
	})
}

// SetIdentifier normalizes raw input (digits only, at most the code
// length) and adopts it. When normalization leaves the current value
// unchanged nothing is published, so echoing an accepted digit back into
// the field does not loop.
func (vm *ViewModel) SetIdentifier(raw string) {
	vm.loop.Post(func() {
		norm := Normalize(raw, vm.codeLen)
		if norm == vm.state.Identifier {
			return
		}
		next := vm.state
		next.Identifier = norm
		vm.setState(next)
	})
}

// SetSecret adopts the password input as typed.
func (vm *ViewModel) SetSecret(raw string) {
	vm.loop.Post(func() {
		if raw == vm.state.Secret {
			return
		}
		next := vm.state
		next.Secret = raw
		vm.setState(next)
	})
}

// SignIn runs one sign-in attempt: validate, call the backend, persist,
// notify the gate. A second call while an attempt is in flight is a
// no-op.
func (vm *ViewModel) SignIn() {
	vm.loop.Post(func() {
		if vm.state.Loading {
			return
		}

		next := vm.state
		next.ErrorMessage = ""
		next.Phase = PhaseValidating
		vm.setState(next)

		if err := validateIdentifier(vm.state.Identifier, vm.codeLen); err != nil {
			vm.fail(err.Error())
			return
		}
		if err := validateSecret(vm.state.Secret, vm.minSecret); err != nil {
			vm.fail(err.Error())
			return
		}

		next = vm.state
		next.Phase = PhaseSubmitting
		next.Loading = true
		vm.setState(next)

		identifier, secret := vm.state.Identifier, vm.state.Secret
		go vm.submit(identifier, secret)
	})
}

// submit runs off the loop: the network call and persistence block, and
// the outcome is posted back before any state is touched.
func (vm *ViewModel) submit(identifier, secret string) {
	err := vm.auth.Login(context.Background(), identifier, secret)

	vm.loop.Post(func() {
		if err != nil {
			vm.fail(err.Error())
			return
		}

		// Authorization already succeeded remotely; a persistence
		// failure is logged and does not undo it.
		if saveErr := vm.store.Save(identifier, secret); saveErr != nil {
			vm.logger.Error("persist credentials", "error", saveErr)
		}

		next := vm.state
		next.Phase = PhaseAuthorized
		next.Loading = false
		vm.setState(next)
		vm.gate.Authorized(identifier)
	})
}

// TrySignInAutomatically adopts stored credentials and authorizes without
// a network round trip when the store holds a valid pair. It trusts local
// storage: no server re-validation, no expiry.
func (vm *ViewModel) TrySignInAutomatically() {
	vm.loop.Post(func() {
		if vm.state.Loading || !vm.store.HasValid() {
			return
		}
		identifier, ok := vm.store.SavedIdentifier()
		if !ok {
			return
		}
		next := vm.state
		next.Identifier = identifier
		next.Phase = PhaseAuthorized
		next.ErrorMessage = ""
		vm.setState(next)
		vm.gate.Authorized(identifier)
	})
}

// ResetCredentials clears the store. Storage failures are logged and
// swallowed; the caller never sees them.
func (vm *ViewModel) ResetCredentials() {
	vm.loop.Post(func() {
		if err := vm.store.Clear(); err != nil {
			vm.logger.Error("clear credentials", "error", err)
		}
	})
}

func (vm *ViewModel) fail(reason string) {
	next := vm.state
	next.Phase = PhaseFailed
	next.Loading = false
	next.ErrorMessage = reason
	vm.setState(next)
}

func (vm *ViewModel) setState(next Snapshot) {
	vm.state = next
	for _, ch := range vm.subs {
		ch <- next
	}
}
