package handlers

import (
	"context"

	"myblog"
	"myblog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockRegistration struct {
	user *myblog.User
	err  error

	calls []service.RegisterInput
}

func (m *mockRegistration) Register(_ context.Context, in service.RegisterInput) (*myblog.User, error) {
	m.calls = append(m.calls, in)
	return m.user, m.err
}

// mockSessions hands out a single fixed session and records every mutation.
type mockSessions struct {
	session   myblog.Session
	resumeErr error
	bindErr   error

	bound          []myblog.SessionUser
	flashErrors    []string
	flashSuccesses []string
	takeCalls      int
	destroyCalls   int
}

func (m *mockSessions) Resume(_ context.Context, _ string) (*myblog.Session, error) {
	if m.resumeErr != nil {
		return nil, m.resumeErr
	}
	cp := m.session
	return &cp, nil
}

func (m *mockSessions) Cookie(s *myblog.Session) (string, error) {
	return "signed-" + s.Token, nil
}

func (m *mockSessions) Bind(_ context.Context, s *myblog.Session, u *myblog.User) error {
	if m.bindErr != nil {
		return m.bindErr
	}
	proj := u.Project()
	m.bound = append(m.bound, proj)
	s.User = &proj
	return nil
}

func (m *mockSessions) FlashSuccess(_ context.Context, s *myblog.Session, message string) error {
	m.flashSuccesses = append(m.flashSuccesses, message)
	s.Flash.Success = message
	return nil
}

func (m *mockSessions) FlashError(_ context.Context, s *myblog.Session, message string) error {
	m.flashErrors = append(m.flashErrors, message)
	s.Flash.Error = message
	return nil
}

func (m *mockSessions) TakeFlash(_ context.Context, s *myblog.Session) (myblog.Flash, error) {
	m.takeCalls++
	f := s.Flash
	s.Flash = myblog.Flash{}
	return f, nil
}

func (m *mockSessions) Destroy(_ context.Context, _ *myblog.Session) error {
	m.destroyCalls++
	return nil
}

// lastError returns the most recent error flash, or "".
func (m *mockSessions) lastError() string {
	if len(m.flashErrors) == 0 {
		return ""
	}
	return m.flashErrors[len(m.flashErrors)-1]
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, uploadDir string) *gin.Engine {
	h := NewHandler(s, Config{UploadDir: uploadDir}, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
