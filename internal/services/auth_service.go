package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"reviewBack/internal/models"
	"reviewBack/internal/repositories"
	"reviewBack/utils"
)

var (
	ErrIdentityUnavailable = errors.New("identity provider not configured")
	ErrInvalidIDToken      = errors.New("invalid identity token")
	ErrSessionExpired      = errors.New("session expired")
)

// TokenVerifier abstracts the identity provider: it checks a federated ID
// token and reports the verified user id plus profile claims.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService exchanges a verified identity-provider token for a local
// access/refresh token pair. It makes no trust decisions of its own.
type AuthService struct {
	Verifier   TokenVerifier
	Sessions   *repositories.SessionRepository
	Tokens     *utils.Manager
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewFirebaseVerifier builds the Firebase auth client from a service
// account credentials file.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (TokenVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}

// ExchangeIDToken verifies the provider token, persists a refresh session
// and mints the access token handed back to the client.
func (s *AuthService) ExchangeIDToken(ctx context.Context, idToken string) (models.SessionTokens, error) {
	if s.Verifier == nil {
		return models.SessionTokens{}, ErrIdentityUnavailable
	}

	token, err := s.Verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.SessionTokens{}, ErrInvalidIDToken
	}

	profile := models.IdentityProfile{ID: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		profile.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		profile.Picture = picture
	}
	if email, ok := token.Claims["email"].(string); ok {
		profile.Email = email
	}

	return s.issueTokens(ctx, profile)
}

// Refresh trades a live refresh token for a new access/refresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error) {
	session, err := s.Sessions.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.SessionTokens{}, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.Sessions.DeleteSession(ctx, refreshToken)
		return models.SessionTokens{}, ErrSessionExpired
	}
	return s.issueTokens(ctx, models.IdentityProfile{ID: session.UserID})
}

func (s *AuthService) issueTokens(ctx context.Context, profile models.IdentityProfile) (models.SessionTokens, error) {
	access, err := s.Tokens.NewJWT(profile.ID, s.AccessTTL)
	if err != nil {
		return models.SessionTokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.SessionTokens{}, err
	}

	expiresAt := time.Now().Add(s.RefreshTTL)
	err = s.Sessions.UpsertSession(ctx, models.Session{
		UserID:       profile.ID,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		return models.SessionTokens{}, err
	}

	return models.SessionTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         profile,
	}, nil
}
