package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/espk-mobile/appcore/internal/config"
	"github.com/espk-mobile/appcore/internal/coordinator"
	"github.com/espk-mobile/appcore/internal/login"
	"github.com/espk-mobile/appcore/internal/logging"
)

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	return config.Config{
		APIBaseURL:      baseURL,
		LoginPath:       "/api/login",
		RequestTimeout:  2 * time.Second,
		LoginCodeLength: 5,
		MinSecretLength: 1,
		DataDir:         t.TempDir(),
	}
}

func waitForScreen(t *testing.T, ch <-chan coordinator.Screen, want coordinator.Screen) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("expected screen %v, got %v", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for screen %v", want)
	}
}

func TestAutoSignInNavigatesToMain(t *testing.T) {
	a, err := New(testConfig(t, "http://127.0.0.1:0"), logging.Discard())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	if err := a.Store.Save("54321", "stored"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	screens := a.Coordinator.Subscribe()
	a.Login.TrySignInAutomatically()

	// No network involved: the stored credentials alone authorize.
	waitForScreen(t, screens, coordinator.ScreenMain)

	if s := a.Login.State(); s.Identifier != "54321" {
		t.Fatalf("expected adopted identifier, got %q", s.Identifier)
	}
}

func TestInteractiveSignInAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL), logging.Discard())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	screens := a.Coordinator.Subscribe()
	states := a.Login.Subscribe()

	a.Coordinator.Navigate(coordinator.ScreenLogin)
	waitForScreen(t, screens, coordinator.ScreenLogin)

	a.Login.SetIdentifier("12345")
	a.Login.SetSecret("hunter2")
	a.Login.SignIn()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-states:
			if s.Phase == login.PhaseFailed {
				t.Fatalf("sign-in failed: %q", s.ErrorMessage)
			}
			if s.Phase == login.PhaseAuthorized {
				waitForScreen(t, screens, coordinator.ScreenMain)
				if !a.Store.HasValid() {
					t.Fatalf("credentials should be persisted after sign-in")
				}
				return
			}
		case <-deadline:
			t.Fatalf("sign-in did not complete")
		}
	}
}
