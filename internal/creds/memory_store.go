package creds

import "sync"

// MemoryStore is an in-memory Store for testing. FailSave and FailClear
// force storage errors to exercise the logged-but-not-surfaced paths.
type MemoryStore struct {
	mu         sync.Mutex
	identifier string
	secret     string
	codeLen    int

	SaveCalls  int
	ClearCalls int
	FailSave   error
	FailClear  error
}

// NewMemoryStore builds an empty in-memory store expecting codeLen-digit
// identifiers.
func NewMemoryStore(codeLen int) *MemoryStore {
	return &MemoryStore{codeLen: codeLen}
}

// Seed pre-populates stored credentials without counting as a Save call.
func (s *MemoryStore) Seed(identifier, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identifier = identifier
	s.secret = secret
}

func (s *MemoryStore) SavedIdentifier() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identifier == "" {
		return "", false
	}
	return s.identifier, true
}

func (s *MemoryStore) HasValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validIdentifier(s.identifier, s.codeLen) && s.secret != ""
}

func (s *MemoryStore) Save(identifier, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	if s.FailSave != nil {
		return storageErr("save", s.FailSave)
	}
	s.identifier = identifier
	s.secret = secret
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ClearCalls++
	if s.FailClear != nil {
		return storageErr("clear", s.FailClear)
	}
	s.identifier = ""
	s.secret = ""
	return nil
}
