package myblog

import (
	"path/filepath"
	"time"
)

// Gender values accepted at registration.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderUnspecified = "unspecified"
)

// User is a persisted account record.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"` // unique across all accounts
	Gender       string    `json:"gender"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"` // public filename under the upload dir
	PasswordHash string    `json:"-"`      // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the reduced account projection stored in a session.
// It deliberately has no password hash field.
type SessionUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// Project returns the session-safe view of the account.
func (u *User) Project() SessionUser {
	return SessionUser{
		ID:     u.ID,
		Name:   u.Name,
		Gender: u.Gender,
		Bio:    u.Bio,
		Avatar: u.Avatar,
	}
}

// Upload describes an avatar file the upload middleware already wrote to disk.
// A zero Upload means no file was submitted.
type Upload struct {
	OriginalName string // filename as submitted by the client
	StoredPath   string // unique path assigned by the upload middleware
}

// Filename is the public name persisted with the account: the stored
// path's final segment.
func (u Upload) Filename() string {
	if u.StoredPath == "" {
		return ""
	}
	return filepath.Base(u.StoredPath)
}
