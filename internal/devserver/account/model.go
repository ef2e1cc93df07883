package account

import "time"

// Account is a login account known to the development server.
type Account struct {
	ID         string
	Code       string
	SecretHash []byte
	DeviceID   string
	CreatedAt  time.Time
}

// Credentials is the material presented on registration or login.
type Credentials struct {
	Code     string
	Secret   string
	DeviceID string
}
