package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"myblog"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	timeLayout = "2006-01-02 15:04:05"

	insertUserSQL = `INSERT INTO users (name, gender, bio, avatar, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`
)

// Create inserts a new account and returns it with the generated id.
func (r *UserSQLite) Create(ctx context.Context, u myblog.User) (*myblog.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	} else {
		u.CreatedAt = u.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Name,
		u.Gender,
		u.Bio,
		u.Avatar,
		u.PasswordHash,
		u.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("insert user %q: %w", u.Name, err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for user %q: %w", u.Name, err)
	}
	u.ID = int(lastID)
	return &u, nil
}

// isUniqueViolation reports whether err is SQLite signalling a violated
// UNIQUE constraint. The string fallback covers errors that arrive wrapped
// by other drivers (and the sqlmock tests).
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT,
			sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
