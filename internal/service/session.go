package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"myblog"
	"myblog/internal/logger"
	"myblog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Key derivation parameters for the cookie-signing key. The configured
	// session secret is stretched once at construction, not per request.
	signingKeySalt  = "myblog.session"
	signingKeyIters = 4096
	signingKeyLen   = 32

	defaultSessionTTL = 30 * 24 * time.Hour
)

// SessionService implements Sessions over a token-keyed session store.
// Session state travels as an explicit parameter; nothing is mutated through
// ambient request context.
type SessionService struct {
	sessions   repository.Sessions
	signingKey []byte
	ttl        time.Duration
	log        *logger.Logger
}

func NewSessionService(sessions repository.Sessions, secret string, ttl time.Duration, log *logger.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		sessions:   sessions,
		signingKey: pbkdf2.Key([]byte(secret), []byte(signingKeySalt), signingKeyIters, signingKeyLen, sha256.New),
		ttl:        ttl,
		log:        log,
	}
}

var _ Sessions = (*SessionService)(nil)

// sessionClaims carries the opaque session token inside the signed cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sid"`
}

// Resume returns the session for the presented cookie, or starts a fresh one
// when the cookie is absent, tampered with, unknown or expired. A storage
// failure is the only error path.
func (s *SessionService) Resume(ctx context.Context, cookieValue string) (*myblog.Session, error) {
	if cookieValue != "" {
		token, err := s.parseCookie(cookieValue)
		if err == nil {
			sess, err := s.sessions.Get(ctx, token)
			if err != nil {
				return nil, err
			}
			if sess != nil && !sess.Expired(time.Now()) {
				return sess, nil
			}
		} else if s.log != nil {
			s.log.Debugw("session_cookie_rejected", "err", err)
		}
	}
	return s.start(ctx)
}

func (s *SessionService) start(ctx context.Context) (*myblog.Session, error) {
	now := time.Now().UTC()
	sess := myblog.Session{
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		IsNew:     true,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &sess, nil
}

// Cookie returns the signed cookie value carrying the session token.
func (s *SessionService) Cookie(sess *myblog.Session) (string, error) {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
		SessionToken: sess.Token,
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return value, nil
}

func (s *SessionService) parseCookie(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionToken == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.SessionToken, nil
}

// Bind writes the reduced account projection into the session. Only call with
// a record the repository has persisted; the projection never carries the
// password hash.
func (s *SessionService) Bind(ctx context.Context, sess *myblog.Session, u *myblog.User) error {
	if u == nil || u.ID == 0 {
		return errors.New("bind requires a persisted account")
	}
	proj := u.Project()
	if err := s.sessions.BindUser(ctx, sess.Token, proj); err != nil {
		return err
	}
	sess.User = &proj
	return nil
}

// FlashSuccess overwrites the pending success message.
func (s *SessionService) FlashSuccess(ctx context.Context, sess *myblog.Session, message string) error {
	if err := s.sessions.SetFlash(ctx, sess.Token, repository.SeveritySuccess, message); err != nil {
		return err
	}
	sess.Flash.Success = message
	return nil
}

// FlashError overwrites the pending error message.
func (s *SessionService) FlashError(ctx context.Context, sess *myblog.Session, message string) error {
	if err := s.sessions.SetFlash(ctx, sess.Token, repository.SeverityError, message); err != nil {
		return err
	}
	sess.Flash.Error = message
	return nil
}

// TakeFlash consumes the pending messages; a flash renders once.
func (s *SessionService) TakeFlash(ctx context.Context, sess *myblog.Session) (myblog.Flash, error) {
	f, err := s.sessions.TakeFlash(ctx, sess.Token)
	if err != nil {
		return myblog.Flash{}, err
	}
	sess.Flash = myblog.Flash{}
	return f, nil
}

// Destroy deletes the session row, signing the client out.
func (s *SessionService) Destroy(ctx context.Context, sess *myblog.Session) error {
	return s.sessions.Delete(ctx, sess.Token)
}
