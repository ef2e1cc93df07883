package account

import (
	"context"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 5)

	ctx := context.Background()
	acc, err := svc.Register(ctx, Credentials{Code: "12345", Secret: "hunter2", DeviceID: "device-1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acc.ID == "" {
		t.Fatalf("expected generated account id")
	}

	if _, err := svc.Authenticate(ctx, Credentials{Code: "12345", Secret: "hunter2", DeviceID: "device-1"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestRegisterRejectsMalformedCode(t *testing.T) {
	svc := NewService(NewMemoryRepository(), 5)
	ctx := context.Background()

	for _, code := range []string{"1234", "123456", "12a45", ""} {
		if _, err := svc.Register(ctx, Credentials{Code: code, Secret: "x"}); err == nil {
			t.Fatalf("expected rejection for code %q", code)
		}
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	svc := NewService(NewMemoryRepository(), 5)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Code: "12345", Secret: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{Code: "12345", Secret: "wrong"}); err == nil {
		t.Fatalf("expected authentication failure")
	}
}

func TestAuthenticateDeviceBinding(t *testing.T) {
	svc := NewService(NewMemoryRepository(), 5)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Code: "12345", Secret: "s"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// First device binds.
	acc, err := svc.Authenticate(ctx, Credentials{Code: "12345", Secret: "s", DeviceID: "device-1"})
	if err != nil {
		t.Fatalf("first authenticate: %v", err)
	}
	if acc.DeviceID != "device-1" {
		t.Fatalf("expected device binding, got %q", acc.DeviceID)
	}

	// A different device is rejected.
	if _, err := svc.Authenticate(ctx, Credentials{Code: "12345", Secret: "s", DeviceID: "device-2"}); err == nil {
		t.Fatalf("expected device mismatch error")
	}
}
