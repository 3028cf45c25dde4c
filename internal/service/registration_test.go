package service

import (
	"context"
	"errors"
	"testing"

	"myblog"
	"myblog/internal/repository"
)

// mockUsers is a lightweight in-test mock for repository.Users.
type mockUsers struct {
	CreateFn    func(u myblog.User) (*myblog.User, error)
	createCalls []myblog.User
}

func (m *mockUsers) Create(_ context.Context, u myblog.User) (*myblog.User, error) {
	m.createCalls = append(m.createCalls, u)
	return m.CreateFn(u)
}

// mockCleaner records dispatched paths.
type mockCleaner struct {
	dispatched []string
}

func (m *mockCleaner) Dispatch(path string) {
	if path != "" {
		m.dispatched = append(m.dispatched, path)
	}
}

func TestRegistrationService_Success(t *testing.T) {
	users := &mockUsers{
		CreateFn: func(u myblog.User) (*myblog.User, error) {
			persisted := u
			persisted.ID = 7
			return &persisted, nil
		},
	}
	cleaner := &mockCleaner{}
	svc := NewRegistrationService(users, cleaner, nil)

	got, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected persisted id 7, got %d", got.ID)
	}

	if len(users.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(users.createCalls))
	}
	stored := users.createCalls[0]
	if stored.PasswordHash == "secret1" {
		t.Fatal("plaintext password must never be stored")
	}
	if stored.PasswordHash != hashPassword("secret1") {
		t.Fatalf("stored hash %q is not the deterministic digest of the password", stored.PasswordHash)
	}
	if stored.Avatar != "a1b2.png" {
		t.Fatalf("avatar filename: got %q, want stored path's final segment", stored.Avatar)
	}
	if len(cleaner.dispatched) != 0 {
		t.Fatalf("success must not dispatch cleanup, got %v", cleaner.dispatched)
	}
}

func TestRegistrationService_ValidationFailureCleansUp(t *testing.T) {
	users := &mockUsers{
		CreateFn: func(u myblog.User) (*myblog.User, error) {
			t.Fatal("Create must not be called for invalid input")
			return nil, nil
		},
	}
	cleaner := &mockCleaner{}
	svc := NewRegistrationService(users, cleaner, nil)

	in := validInput()
	in.Repassword = "secret2"

	_, err := svc.Register(context.Background(), in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Message != msgPasswordMismatch {
		t.Fatalf("message: got %q, want %q", verr.Message, msgPasswordMismatch)
	}
	if len(cleaner.dispatched) != 1 || cleaner.dispatched[0] != in.Avatar.StoredPath {
		t.Fatalf("expected exactly one cleanup dispatch for %q, got %v", in.Avatar.StoredPath, cleaner.dispatched)
	}
}

func TestRegistrationService_ConflictCleansUp(t *testing.T) {
	users := &mockUsers{
		CreateFn: func(u myblog.User) (*myblog.User, error) {
			return nil, repository.ErrNameTaken
		},
	}
	cleaner := &mockCleaner{}
	svc := NewRegistrationService(users, cleaner, nil)

	in := validInput()
	_, err := svc.Register(context.Background(), in)

	if !errors.Is(err, repository.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatal("conflict must not surface as a validation error")
	}
	if len(cleaner.dispatched) != 1 {
		t.Fatalf("expected one cleanup dispatch, got %v", cleaner.dispatched)
	}
}

func TestRegistrationService_StorageFaultCleansUp(t *testing.T) {
	cause := errors.New("connection lost")
	users := &mockUsers{
		CreateFn: func(u myblog.User) (*myblog.User, error) {
			return nil, cause
		},
	}
	cleaner := &mockCleaner{}
	svc := NewRegistrationService(users, cleaner, nil)

	in := validInput()
	_, err := svc.Register(context.Background(), in)

	if err == nil || errors.Is(err, repository.ErrNameTaken) {
		t.Fatalf("expected a generic storage fault, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("fault must wrap the cause, got %v", err)
	}
	if len(cleaner.dispatched) != 1 {
		t.Fatalf("expected one cleanup dispatch, got %v", cleaner.dispatched)
	}
}

// No upload means nothing to clean even on the failure path.
func TestRegistrationService_NoUploadNothingDispatched(t *testing.T) {
	users := &mockUsers{CreateFn: func(u myblog.User) (*myblog.User, error) { return nil, nil }}
	cleaner := &mockCleaner{}
	svc := NewRegistrationService(users, cleaner, nil)

	in := validInput()
	in.Avatar = myblog.Upload{}

	_, err := svc.Register(context.Background(), in)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != msgAvatarMissing {
		t.Fatalf("expected missing-avatar violation, got %v", err)
	}
	if len(cleaner.dispatched) != 0 {
		t.Fatalf("expected no dispatches, got %v", cleaner.dispatched)
	}
}
