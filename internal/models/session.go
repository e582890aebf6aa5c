package models

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one refresh-token record for a verified identity.
type Session struct {
	UserID       string    `json:"userId"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IdentityProfile carries the profile fields the identity provider attaches
// to a verified token.
type IdentityProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

type SessionTokens struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	User         IdentityProfile `json:"user"`
}
