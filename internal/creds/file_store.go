package creds

import "errors"

// FileStore implements Store on top of the preferences file (identifier)
// and the encrypted vault (secret).
type FileStore struct {
	prefs   *Prefs
	vault   *Vault
	codeLen int
}

// NewFileStore opens the backing preferences file and vault under dir.
// codeLen is the required identifier length in digits.
func NewFileStore(dir string, codeLen int) (*FileStore, error) {
	prefs, err := OpenPrefs(dir)
	if err != nil {
		return nil, storageErr("open preferences", err)
	}
	vault, err := OpenVault(dir)
	if err != nil {
		return nil, storageErr("open vault", err)
	}
	return &FileStore{prefs: prefs, vault: vault, codeLen: codeLen}, nil
}

// Prefs exposes the underlying preferences file for non-credential values
// such as the device id.
func (s *FileStore) Prefs() *Prefs { return s.prefs }

func (s *FileStore) SavedIdentifier() (string, bool) {
	id, ok := s.prefs.Get(IdentifierKey)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func (s *FileStore) HasValid() bool {
	id, ok := s.SavedIdentifier()
	if !ok || !validIdentifier(id, s.codeLen) {
		return false
	}
	secret, err := s.vault.Get(ServiceName, SecretAccount)
	if err != nil {
		return false
	}
	return secret != ""
}

func (s *FileStore) Save(identifier, secret string) error {
	if err := s.prefs.Set(IdentifierKey, identifier); err != nil {
		return storageErr("save identifier", err)
	}
	// Set removes any previous entry before sealing the new secret.
	if err := s.vault.Set(ServiceName, SecretAccount, secret); err != nil {
		return storageErr("save secret", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := s.prefs.Delete(IdentifierKey); err != nil {
		return storageErr("clear identifier", err)
	}
	if err := s.vault.Delete(ServiceName, SecretAccount); err != nil && !errors.Is(err, ErrNotFound) {
		return storageErr("clear secret", err)
	}
	return nil
}
