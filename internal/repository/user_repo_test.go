package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"myblog"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserSQLite_Create(t *testing.T) {
	createdAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	account := myblog.User{
		Name:         "alice",
		Gender:       myblog.GenderFemale,
		Bio:          "hello world",
		Avatar:       "a1b2.png",
		PasswordHash: "00cafd126182e8a9e7c01bb2f0dfd00496be724f",
		CreatedAt:    createdAt,
	}

	tests := []struct {
		name        string
		mockExpect  func(sqlmock.Sqlmock)
		wantID      int
		wantErr     error
		errContains string
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "female", "hello world", "a1b2.png", account.PasswordHash, createdAt.Format(timeLayout)).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			wantID: 7,
		},
		{
			name: "unique violation maps to ErrNameTaken",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "female", "hello world", "a1b2.png", account.PasswordHash, createdAt.Format(timeLayout)).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.name (2067)"))
			},
			wantErr: ErrNameTaken,
		},
		{
			name: "other exec error is wrapped",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "female", "hello world", "a1b2.png", account.PasswordHash, createdAt.Format(timeLayout)).
					WillReturnError(errors.New("db exec failed"))
			},
			errContains: "insert user",
		},
		{
			name: "last insert id error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "female", "hello world", "a1b2.png", account.PasswordHash, createdAt.Format(timeLayout)).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			errContains: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			got, err := repo.Create(context.Background(), account)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.errContains != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContains, err.Error())
				}
				if errors.Is(err, ErrNameTaken) {
					t.Fatalf("generic storage error must not map to ErrNameTaken: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, got.ID)
			}
			if got.PasswordHash != account.PasswordHash {
				t.Fatalf("persisted hash changed: %q", got.PasswordHash)
			}
		})
	}
}

func TestIsUniqueViolation_PlainErrorIsNot(t *testing.T) {
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatal("generic error classified as unique violation")
	}
}
