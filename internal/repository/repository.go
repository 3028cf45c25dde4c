package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"myblog"
)

// ErrNameTaken is returned by Users.Create when the account name uniqueness
// constraint is violated. The insert itself is the authoritative check; there
// is deliberately no existence pre-check (check-then-insert races).
var ErrNameTaken = errors.New("name already taken")

// Flash severities. Each severity has its own single slot in the session row.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
)

type Users interface {
	// Create inserts a new account and returns the persisted record with its
	// generated id. Returns ErrNameTaken on a name uniqueness violation and a
	// wrapped storage error otherwise.
	Create(ctx context.Context, u myblog.User) (*myblog.User, error)
}

type Sessions interface {
	Create(ctx context.Context, s myblog.Session) error
	// Get returns (nil, nil) when the token is unknown.
	Get(ctx context.Context, token string) (*myblog.Session, error)
	BindUser(ctx context.Context, token string, u myblog.SessionUser) error
	// SetFlash overwrites the pending message for the given severity.
	SetFlash(ctx context.Context, token, severity, message string) error
	// TakeFlash returns the pending messages and clears both slots atomically.
	TakeFlash(ctx context.Context, token string) (myblog.Flash, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Users    Users
	Sessions Sessions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Sessions: NewSessionSQLite(db),
	}
}
