package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	prefsFile   = "prefs.json"
	deviceIDKey = "device.id"
)

// Prefs is the general application preferences file: a flat string map
// persisted as JSON under the data directory. It holds low-sensitivity
// values such as the saved login identifier and the install's device id.
type Prefs struct {
	path string
}

// OpenPrefs prepares the preferences file under dir, creating the
// directory if needed.
func OpenPrefs(dir string) (*Prefs, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Prefs{path: filepath.Join(dir, prefsFile)}, nil
}

// Get returns the stored value for key, if present.
func (p *Prefs) Get(key string) (string, bool) {
	values, err := p.load()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

// Set stores key=value, creating the file on first write.
func (p *Prefs) Set(key, value string) error {
	values, err := p.load()
	if err != nil {
		return err
	}
	values[key] = value
	return p.save(values)
}

// Delete removes key. A missing key is not an error.
func (p *Prefs) Delete(key string) error {
	values, err := p.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return p.save(values)
}

// DeviceID returns the per-install device identifier, generating and
// persisting one on first use. The id accompanies every login request so
// the backend can bind sessions to a device.
func (p *Prefs) DeviceID() (string, error) {
	if id, ok := p.Get(deviceIDKey); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := p.Set(deviceIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Prefs) load() (map[string]string, error) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return values, nil
}

func (p *Prefs) save(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
