package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// SessionRepository user_sessions table access
type SessionRepository struct {
	db     *Database
	logger utils.Logger
}

// NewSessionRepository creates a SessionRepository
func NewSessionRepository(db *Database) *SessionRepository {
	return &SessionRepository{db: db, logger: utils.GetLogger()}
}

// Create inserts a session row
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO user_sessions (user_id, session_token, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		session.UserID, session.Token, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		r.logger.Error("create session failed", "userID", session.UserID, "error", err.Error())
		return utils.ErrDatabaseInsert
	}
	if id, err := result.LastInsertId(); err == nil {
		session.ID = uint(id)
	}
	return nil
}

// GetByToken loads a session; expiry is the caller's concern
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Session
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT id, user_id, session_token, expires_at, created_at FROM user_sessions WHERE session_token = ?`, token).
		Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidSessionToken
		}
		r.logger.Error("get session failed", "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return &s, nil
}

// DeleteByToken removes the session and returns the number of rows deleted
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM user_sessions WHERE session_token = ?`, token)
	if err != nil {
		r.logger.Error("delete session failed", "error", err.Error())
		return 0, utils.ErrDatabaseDelete
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, utils.ErrDatabaseDelete
	}
	return n, nil
}

// DeleteExpired removes sessions whose expiry is before now
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM user_sessions WHERE expires_at < ?`, now)
	if err != nil {
		r.logger.Error("delete expired sessions failed", "error", err.Error())
		return 0, utils.ErrDatabaseDelete
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, utils.ErrDatabaseDelete
	}
	return n, nil
}
