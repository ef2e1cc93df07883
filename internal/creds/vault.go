package creds

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	vaultFile = "vault.dat"
	keyFile   = "vault.key"

	keySize   = 32
	nonceSize = 24
)

// ErrNotFound is returned when a vault entry does not exist.
var ErrNotFound = errors.New("vault entry not found")

type vaultEntry struct {
	Nonce []byte `json:"nonce"`
	Box   []byte `json:"box"`
}

// Vault is the secure channel for secrets: entries are addressed by
// service+account and sealed with a per-install key held in a 0600 key
// file. The key file never leaves the data directory.
type Vault struct {
	path string
	key  [keySize]byte
}

// OpenVault loads or creates the vault key under dir and returns the vault.
func OpenVault(dir string) (*Vault, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	v := &Vault{path: filepath.Join(dir, vaultFile)}

	keyPath := filepath.Join(dir, keyFile)
	raw, err := os.ReadFile(keyPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if _, err := io.ReadFull(rand.Reader, v.key[:]); err != nil {
			return nil, fmt.Errorf("generate vault key: %w", err)
		}
		if err := os.WriteFile(keyPath, v.key[:], 0o600); err != nil {
			return nil, fmt.Errorf("write vault key: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read vault key: %w", err)
	case len(raw) != keySize:
		return nil, fmt.Errorf("vault key corrupted: %d bytes", len(raw))
	default:
		copy(v.key[:], raw)
	}

	return v, nil
}

// Get decrypts and returns the secret stored for service+account.
func (v *Vault) Get(service, account string) (string, error) {
	entries, err := v.load()
	if err != nil {
		return "", err
	}
	entry, ok := entries[entryKey(service, account)]
	if !ok {
		return "", ErrNotFound
	}
	if len(entry.Nonce) != nonceSize {
		return "", fmt.Errorf("vault entry corrupted: bad nonce")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], entry.Nonce)
	plain, ok := secretbox.Open(nil, entry.Box, &nonce, &v.key)
	if !ok {
		return "", fmt.Errorf("vault entry corrupted: decryption failed")
	}
	return string(plain), nil
}

// Set seals secret under service+account. Any existing entry for the
// pair is removed first so the store never holds duplicates.
func (v *Vault) Set(service, account, secret string) error {
	entries, err := v.load()
	if err != nil {
		return err
	}
	delete(entries, entryKey(service, account))

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	entries[entryKey(service, account)] = vaultEntry{
		Nonce: nonce[:],
		Box:   secretbox.Seal(nil, []byte(secret), &nonce, &v.key),
	}
	return v.save(entries)
}

// Delete removes the entry for service+account. Returns ErrNotFound if
// no such entry exists.
func (v *Vault) Delete(service, account string) error {
	entries, err := v.load()
	if err != nil {
		return err
	}
	if _, ok := entries[entryKey(service, account)]; !ok {
		return ErrNotFound
	}
	delete(entries, entryKey(service, account))
	return v.save(entries)
}

func entryKey(service, account string) string {
	return service + "\x00" + account
}

func (v *Vault) load() (map[string]vaultEntry, error) {
	raw, err := os.ReadFile(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]vaultEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	entries := map[string]vaultEntry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode vault: %w", err)
	}
	return entries, nil
}

func (v *Vault) save(entries map[string]vaultEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode vault: %w", err)
	}
	tmp := v.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	if err := os.Rename(tmp, v.path); err != nil {
		return fmt.Errorf("replace vault: %w", err)
	}
	return nil
}
