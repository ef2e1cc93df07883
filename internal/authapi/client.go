// Package authapi is the connector to the remote authentication endpoint.
// The protocol is deliberately small: one POST, success iff the server
// answers 2xx, no token, no retry.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Maximum number of response body bytes kept for error messages.
const maxErrorBody = 4 << 10

// Service authenticates an identifier/secret pair against the backend.
type Service interface {
	Login(ctx context.Context, identifier, secret string) error
}

// Client implements Service over HTTP.
type Client struct {
	loginURL string
	deviceID string
	http     *http.Client
}

// NewClient builds a Client for the given login endpoint. deviceID may be
// empty; when set it is sent as the X-Device-ID header on every request.
func NewClient(loginURL, deviceID string, timeout time.Duration) *Client {
	return &Client{
		loginURL: loginURL,
		deviceID: deviceID,
		http:     &http.Client{Timeout: timeout},
	}
}

// Wire field names follow the original client protocol.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login issues a single login request. A 2xx response is success; the
// body is ignored. Everything else maps onto the package error taxonomy.
func (c *Client) Login(ctx context.Context, identifier, secret string) error {
	body, err := json.Marshal(loginRequest{Username: identifier, Password: secret})
	if err != nil {
		return &UnknownError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(body))
	if err != nil {
		return &UnknownError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Code: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
}
