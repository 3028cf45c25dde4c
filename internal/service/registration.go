package service

import (
	"context"
	"errors"
	"fmt"

	"myblog"
	"myblog/internal/logger"
	"myblog/internal/repository"
)

// RegisterInput is one parsed signup submission. It exists only for the
// lifetime of the request and is never persisted as-is.
type RegisterInput struct {
	Name       string
	Gender     string
	Bio        string
	Avatar     myblog.Upload
	Password   string
	Repassword string
}

// AvatarCleaner is the slice of the cleanup worker the registration flow
// needs: schedule removal of an uploaded file without waiting for it.
type AvatarCleaner interface {
	Dispatch(path string)
}

type RegistrationService struct {
	users   repository.Users
	cleaner AvatarCleaner
	log     *logger.Logger
}

func NewRegistrationService(users repository.Users, cleaner AvatarCleaner, log *logger.Logger) *RegistrationService {
	return &RegistrationService{users: users, cleaner: cleaner, log: log}
}

// Register runs validate → hash → insert and returns the persisted account.
// Every failure exit schedules removal of the uploaded avatar before
// returning, so a failed registration never leaves an orphaned file behind.
// Outcomes: (*ValidationError) invalid input, repository.ErrNameTaken name
// conflict, any other error a storage fault for the caller's generic path.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*myblog.User, error) {
	if verr := validateSignup(in); verr != nil {
		s.cleaner.Dispatch(in.Avatar.StoredPath)
		return nil, verr
	}

	account := myblog.User{
		Name:         in.Name,
		Gender:       in.Gender,
		Bio:          in.Bio,
		Avatar:       in.Avatar.Filename(),
		PasswordHash: hashPassword(in.Password),
	}

	created, err := s.users.Create(ctx, account)
	if err != nil {
		s.cleaner.Dispatch(in.Avatar.StoredPath)
		if errors.Is(err, repository.ErrNameTaken) {
			if s.log != nil {
				s.log.Infow("signup_name_conflict", "name", in.Name)
			}
			return nil, repository.ErrNameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}
