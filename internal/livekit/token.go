// Package livekit mints room access tokens for the video vendor.
package livekit

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTTL is how long a minted token stays valid
const defaultTTL = 6 * time.Hour

// TokenMinter signs LiveKit access tokens with the project API credentials
type TokenMinter struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
}

// GrantOptions describes the participant and room permissions for a token
type GrantOptions struct {
	Room         string
	Identity     string
	Name         string
	CanPublish   bool
	CanSubscribe bool
}

// NewTokenMinter creates a minter. Both credentials are required; a zero
// ttl selects the default.
func NewTokenMinter(apiKey, apiSecret string, ttl time.Duration) (*TokenMinter, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("LiveKit credentials not configured")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &TokenMinter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       ttl,
	}, nil
}

// Mint returns a signed JWT granting the participant access to the room
func (m *TokenMinter) Mint(opts GrantOptions) (string, error) {
	if opts.Room == "" || opts.Identity == "" {
		return "", errors.New("room and identity are required")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  m.apiKey,
		"sub":  opts.Identity,
		"name": opts.Name,
		"nbf":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
		"video": map[string]any{
			"room":           opts.Room,
			"roomJoin":       true,
			"canPublish":     opts.CanPublish,
			"canSubscribe":   opts.CanSubscribe,
			"canPublishData": true,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
