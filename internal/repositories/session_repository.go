package repositories

import (
	"context"
	"database/sql"
	"errors"

	"reviewBack/internal/models"
)

type SessionRepository struct {
	DB *sql.DB
}

// UpsertSession stores the refresh token for a user, replacing any previous
// session. One active session per user.
func (r *SessionRepository) UpsertSession(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `
		SELECT user_id, refresh_token, expires_at
		FROM sessions
		WHERE refresh_token = ?
	`
	var session models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.RefreshToken, &session.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	query := `DELETE FROM sessions WHERE refresh_token = ?`
	_, err := r.DB.ExecContext(ctx, query, refreshToken)
	return err
}
