package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service manages dev-server account lifecycle.
type Service struct {
	repo    Repository
	codeLen int
}

// NewService creates a new account service expecting codeLen-digit codes.
func NewService(repo Repository, codeLen int) *Service {
	return &Service{repo: repo, codeLen: codeLen}
}

// Register creates an account and stores a hashed secret.
func (s *Service) Register(ctx context.Context, creds Credentials) (Account, error) {
	if err := s.checkCode(creds.Code); err != nil {
		return Account{}, err
	}
	if creds.Secret == "" {
		return Account{}, errors.New("secret must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Secret), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	acc := Account{
		ID:         uuid.New().String(),
		Code:       creds.Code,
		SecretHash: hash,
		DeviceID:   creds.DeviceID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return Account{}, err
	}

	return acc, nil
}

// Authenticate verifies credentials and binds the first presenting
// device. A later login from a different device is rejected, matching
// the backend's session-per-device rule.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	acc, err := s.repo.FindByCode(ctx, creds.Code)
	if err != nil {
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acc.SecretHash, []byte(creds.Secret)); err != nil {
		return Account{}, errors.New("invalid secret")
	}

	if acc.DeviceID == "" && creds.DeviceID != "" {
		if err := s.repo.UpdateDevice(ctx, acc.ID, creds.DeviceID); err != nil {
			return Account{}, err
		}
		acc.DeviceID = creds.DeviceID
	} else if acc.DeviceID != "" && creds.DeviceID != "" && acc.DeviceID != creds.DeviceID {
		return Account{}, errors.New("device mismatch")
	}

	return acc, nil
}

func (s *Service) checkCode(code string) error {
	if len(code) != s.codeLen {
		return fmt.Errorf("code must be exactly %d digits", s.codeLen)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errors.New("code must contain only digits")
		}
	}
	return nil
}
