package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"myblog"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ Sessions = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `INSERT INTO sessions (token, user_json, flash_success, flash_error, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectSessionSQL = `SELECT token, user_json, flash_success, flash_error, created_at, expires_at FROM sessions WHERE token = ?`
	bindUserSQL      = `UPDATE sessions SET user_json = ? WHERE token = ?`
	setSuccessSQL    = `UPDATE sessions SET flash_success = ? WHERE token = ?`
	setErrorSQL      = `UPDATE sessions SET flash_error = ? WHERE token = ?`
	selectFlashSQL   = `SELECT flash_success, flash_error FROM sessions WHERE token = ?`
	clearFlashSQL    = `UPDATE sessions SET flash_success = '', flash_error = '' WHERE token = ?`
	deleteSessionSQL = `DELETE FROM sessions WHERE token = ?`
	deleteExpiredSQL = `DELETE FROM sessions WHERE expires_at <= ?`
)

// Create inserts a new session row.
func (r *SessionSQLite) Create(ctx context.Context, s myblog.Session) error {
	userJSON, err := marshalSessionUser(s.User)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertSessionSQL,
		s.Token,
		userJSON,
		s.Flash.Success,
		s.Flash.Error,
		s.CreatedAt.UTC().Format(timeLayout),
		s.ExpiresAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get fetches a session by token. Returns (nil, nil) if not found.
func (r *SessionSQLite) Get(ctx context.Context, token string) (*myblog.Session, error) {
	var (
		s        myblog.Session
		userJSON string
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, token).Scan(
		&s.Token, &userJSON, &s.Flash.Success, &s.Flash.Error, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	if userJSON != "" {
		var u myblog.SessionUser
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		s.User = &u
	}
	return &s, nil
}

// BindUser stores the account projection against the session.
func (r *SessionSQLite) BindUser(ctx context.Context, token string, u myblog.SessionUser) error {
	userJSON, err := marshalSessionUser(&u)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, bindUserSQL, userJSON, token); err != nil {
		return fmt.Errorf("bind session user: %w", err)
	}
	return nil
}

// SetFlash overwrites the pending message for the given severity. Last write
// wins; there is one slot per severity, not a queue.
func (r *SessionSQLite) SetFlash(ctx context.Context, token, severity, message string) error {
	var query string
	switch severity {
	case SeveritySuccess:
		query = setSuccessSQL
	case SeverityError:
		query = setErrorSQL
	default:
		return fmt.Errorf("unknown flash severity %q", severity)
	}
	if _, err := r.db.ExecContext(ctx, query, message, token); err != nil {
		return fmt.Errorf("set %s flash: %w", severity, err)
	}
	return nil
}

// TakeFlash reads the pending messages and clears both slots in one
// transaction, so a flash is only ever rendered once.
func (r *SessionSQLite) TakeFlash(ctx context.Context, token string) (myblog.Flash, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return myblog.Flash{}, fmt.Errorf("begin take flash: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var f myblog.Flash
	if err := tx.QueryRowContext(ctx, selectFlashSQL, token).Scan(&f.Success, &f.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return myblog.Flash{}, nil
		}
		return myblog.Flash{}, fmt.Errorf("select flash: %w", err)
	}

	if !f.Empty() {
		if _, err := tx.ExecContext(ctx, clearFlashSQL, token); err != nil {
			return myblog.Flash{}, fmt.Errorf("clear flash: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return myblog.Flash{}, fmt.Errorf("commit take flash: %w", err)
	}
	return f, nil
}

// Delete removes a session row, ending the client's login.
func (r *SessionSQLite) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns how many went.
func (r *SessionSQLite) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSQL, now.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return n, nil
}

func marshalSessionUser(u *myblog.SessionUser) (string, error) {
	if u == nil {
		return "", nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}
	return string(b), nil
}
