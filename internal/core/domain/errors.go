package domain

import (
	"errors"
	"strings"
)

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrForbidden            = errors.New("not allowed to modify this resource")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailInUse           = errors.New("email already in use")
	ErrTokenInvalid         = errors.New("invalid jwt token")
	ErrInvalidOTP           = errors.New("invalid or expired verification code")
	ErrChannelNotConfigured = errors.New("delivery channel is not configured")
	ErrPartnershipNotFound  = errors.New("partnership request not found")
	ErrUploadsDisabled      = errors.New("image uploads are not configured")
	ErrProviderDisabled     = errors.New("sign-in provider is not configured")
)

// ValidationError - ошибка входных данных, которая отдается клиенту как 400.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
