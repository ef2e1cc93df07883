package account

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryRepository builds an in-memory account store, used when the
// dev server runs without a database and in tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[acc.Code]; exists {
		return errors.New("account exists")
	}
	r.accounts[acc.Code] = acc
	return nil
}

func (r *memoryRepository) FindByCode(_ context.Context, code string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[code]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) UpdateDevice(_ context.Context, id, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, acc := range r.accounts {
		if acc.ID == id {
			acc.DeviceID = deviceID
			r.accounts[code] = acc
			return nil
		}
	}
	return ErrNotFound
}
