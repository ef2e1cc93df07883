package creds

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.SavedIdentifier(); ok {
		t.Fatalf("fresh store should have no identifier")
	}
	if store.HasValid() {
		t.Fatalf("fresh store should not report valid credentials")
	}

	if err := store.Save("12345", "hunter2"); err != nil {
		t.Fatalf("save: %v", err)
	}

	id, ok := store.SavedIdentifier()
	if !ok || id != "12345" {
		t.Fatalf("expected saved identifier 12345, got %q ok=%v", id, ok)
	}
	if !store.HasValid() {
		t.Fatalf("expected valid credentials after save")
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("12345", "first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("54321", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	id, _ := store.SavedIdentifier()
	if id != "54321" {
		t.Fatalf("expected overwritten identifier, got %q", id)
	}
	secret, err := store.vault.Get(ServiceName, SecretAccount)
	if err != nil {
		t.Fatalf("read secret: %v", err)
	}
	if secret != "second" {
		t.Fatalf("expected overwritten secret, got %q", secret)
	}
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("12345", "hunter2"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.HasValid() {
		t.Fatalf("credentials should be gone after clear")
	}
	// Clearing an empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreRejectsMalformedStoredIdentifier(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"1234", "123456", "12a45", ""} {
		if err := store.prefs.Set(IdentifierKey, id); err != nil {
			t.Fatalf("seed prefs: %v", err)
		}
		if err := store.vault.Set(ServiceName, SecretAccount, "secret"); err != nil {
			t.Fatalf("seed vault: %v", err)
		}
		if store.HasValid() {
			t.Fatalf("identifier %q should not be considered valid", id)
		}
	}
}

func TestVaultSecretNotStoredInCleartext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, 5)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Save("12345", "very-secret-value"); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, vaultFile))
	if err != nil {
		t.Fatalf("read vault file: %v", err)
	}
	if string(raw) == "" {
		t.Fatalf("vault file empty")
	}
	if bytes.Contains(raw, []byte("very-secret-value")) {
		t.Fatalf("secret appears in cleartext in vault file")
	}
}

func TestVaultDeleteMissingEntry(t *testing.T) {
	vault, err := OpenVault(t.TempDir())
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	if err := vault.Delete(ServiceName, SecretAccount); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVaultSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	vault, err := OpenVault(dir)
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	if err := vault.Set(ServiceName, SecretAccount, "persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenVault(dir)
	if err != nil {
		t.Fatalf("reopen vault: %v", err)
	}
	secret, err := reopened.Get(ServiceName, SecretAccount)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if secret != "persisted" {
		t.Fatalf("expected persisted secret, got %q", secret)
	}
}

func TestPrefsDeviceIDStable(t *testing.T) {
	prefs, err := OpenPrefs(t.TempDir())
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	first, err := prefs.DeviceID()
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	second, err := prefs.DeviceID()
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("device id not stable: %q vs %q", first, second)
	}
}
