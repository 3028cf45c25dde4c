package service

import (
	"unicode/utf8"

	"myblog"
)

// ValidationError reports the first violated signup rule. It is
// user-correctable: the message is shown on the form, never treated as a fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	msgNameLength       = "name must be 1-10 characters"
	msgGenderInvalid    = "gender must be male, female or unspecified"
	msgBioLength        = "bio must be 1-30 characters"
	msgAvatarMissing    = "avatar is required"
	msgPasswordShort    = "password must be at least 6 characters"
	msgPasswordMismatch = "passwords do not match"
)

const (
	nameMinLen     = 1
	nameMaxLen     = 10
	bioMinLen      = 1
	bioMaxLen      = 30
	passwordMinLen = 6
)

// validateSignup checks the submission against the rules in their fixed order
// and returns the first violation; only one message is surfaced per attempt.
// Lengths count runes, not bytes. No side effects.
func validateSignup(in RegisterInput) *ValidationError {
	if n := utf8.RuneCountInString(in.Name); n < nameMinLen || n > nameMaxLen {
		return &ValidationError{Message: msgNameLength}
	}
	switch in.Gender {
	case myblog.GenderMale, myblog.GenderFemale, myblog.GenderUnspecified:
	default:
		return &ValidationError{Message: msgGenderInvalid}
	}
	if n := utf8.RuneCountInString(in.Bio); n < bioMinLen || n > bioMaxLen {
		return &ValidationError{Message: msgBioLength}
	}
	if in.Avatar.OriginalName == "" {
		return &ValidationError{Message: msgAvatarMissing}
	}
	if utf8.RuneCountInString(in.Password) < passwordMinLen {
		return &ValidationError{Message: msgPasswordShort}
	}
	if in.Password != in.Repassword {
		return &ValidationError{Message: msgPasswordMismatch}
	}
	return nil
}
