package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrTournamentIDMismatch = errors.New("tournamentId in body does not match the path")

	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentInvalidType             = errors.New("invalid tournament type")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must not be before start date")
	ErrTournamentInvalidRounds           = errors.New("total rounds must not be negative")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")

	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrTournamentIDRequired = errors.New("tournament id is required")

	ErrBlogTitleRequired    = errors.New("blog post title is required")
	ErrBlogContentRequired  = errors.New("blog post content is required")
	ErrBlogInvalidCategory  = errors.New("invalid blog category")
	ErrBlogInvalidSlug      = errors.New("blog post slug is empty after normalization")
	ErrFileRequired         = errors.New("file is required")
	ErrFileTooLarge         = errors.New("file is too large")
	ErrDescriptionIncomplete = errors.New("tournament name and type are required to generate a description")

	// Ошибки "не найдено"
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrBlogPostNotFound     = errors.New("blog post not found")
	ErrResultNotFound       = errors.New("tournament result not found")

	// Ошибки конфликтов
	ErrBlogSlugConflict = errors.New("a blog post with this slug already exists")
	ErrResultConflict   = errors.New("tournament result was modified concurrently, reload and retry")
	ErrTournamentInUse  = errors.New("tournament still has dependent records")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAuthDisabled       = errors.New("organizer authentication is not configured")

	// Внешние зависимости
	ErrStoreUnavailable     = errors.New("storage is temporarily unavailable")
	ErrGeneratorUnavailable = errors.New("description generator is not available")
)

// storeError marks a driver or network failure as retryable unavailability,
// keeping the cause in the chain.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
