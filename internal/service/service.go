package service

import (
	"context"
	"time"

	"myblog"
	"myblog/internal/logger"
	"myblog/internal/repository"
)

// Registration runs the signup decision flow: validate, hash, persist.
// Transport-free so the whole state machine is testable without HTTP.
type Registration interface {
	Register(ctx context.Context, in RegisterInput) (*myblog.User, error)
}

// Sessions binds accounts and flash messages to token-keyed session state and
// translates tokens to and from the signed cookie value.
type Sessions interface {
	Resume(ctx context.Context, cookieValue string) (*myblog.Session, error)
	Cookie(s *myblog.Session) (string, error)
	Bind(ctx context.Context, s *myblog.Session, u *myblog.User) error
	FlashSuccess(ctx context.Context, s *myblog.Session, message string) error
	FlashError(ctx context.Context, s *myblog.Session, message string) error
	TakeFlash(ctx context.Context, s *myblog.Session) (myblog.Flash, error)
	Destroy(ctx context.Context, s *myblog.Session) error
}

// Cleanup owns the lifecycle of uploaded avatar files on failure paths.
// Dispatch is guaranteed (never dropped); removal happens in the background.
type Cleanup interface {
	Dispatch(path string)
	Run(ctx context.Context)
}

// Maintenance runs the background loop purging expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Maintenance interface {
	Run(ctx context.Context, tick time.Duration)
}

// Config carries the service-level settings read from configuration.
type Config struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type Service struct {
	Registration
	Sessions
	Cleanup
	Maintenance
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	cleaner := NewCleaner(log)
	return &Service{
		Registration: NewRegistrationService(repos.Users, cleaner, log),
		Sessions:     NewSessionService(repos.Sessions, cfg.SessionSecret, cfg.SessionTTL, log),
		Cleanup:      cleaner,
		Maintenance:  NewReaperService(repos.Sessions, log),
	}
}
