package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/repositories"
)

// RegistrationNotifier acknowledges a new registration to the player.
type RegistrationNotifier interface {
	SendRegistrationConfirmation(ctx context.Context, reg *models.PlayerRegistration, tournament *models.Tournament) error
}

type CreateRegistrationInput struct {
	TournamentID         string   `json:"tournamentId"`
	PlayerName           string   `json:"playerName"`
	PlayerEmail          *string  `json:"playerEmail"`
	FeePaid              bool     `json:"feePaid"`
	Gender               *string  `json:"gender"`
	DOB                  *string  `json:"dob"`
	Organization         *string  `json:"organization"`
	Mobile               *string  `json:"mobile"`
	FideRating           *float64 `json:"fideRating"`
	FideID               *string  `json:"fideId"`
	PaymentScreenshotURL *string  `json:"paymentScreenshotUrl"`
}

// UpdateRegistrationInput: id, tournament and registration date are not editable.
type UpdateRegistrationInput struct {
	PlayerName           *string  `json:"playerName"`
	PlayerEmail          *string  `json:"playerEmail"`
	FeePaid              *bool    `json:"feePaid"`
	Gender               *string  `json:"gender"`
	DOB                  *string  `json:"dob"`
	Organization         *string  `json:"organization"`
	Mobile               *string  `json:"mobile"`
	FideRating           *float64 `json:"fideRating"`
	FideID               *string  `json:"fideId"`
	PaymentScreenshotURL *string  `json:"paymentScreenshotUrl"`
}

type RegistrationService interface {
	Register(ctx context.Context, input CreateRegistrationInput) (*models.PlayerRegistration, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error)
	Update(ctx context.Context, id string, input UpdateRegistrationInput) (*models.PlayerRegistration, error)
	Delete(ctx context.Context, id string) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	notifier         RegistrationNotifier
	syncer           RosterSyncer
	logger           *slog.Logger
	now              func() time.Time
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	notifier RegistrationNotifier,
	syncer RosterSyncer,
	logger *slog.Logger,
) RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		notifier:         notifier,
		syncer:           syncer,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, input CreateRegistrationInput) (*models.PlayerRegistration, error) {
	tournamentID := strings.TrimSpace(input.TournamentID)
	playerName := strings.TrimSpace(input.PlayerName)
	if tournamentID == "" {
		return nil, ErrTournamentIDRequired
	}
	if playerName == "" {
		return nil, ErrPlayerNameRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storeError("failed to load tournament", err)
	}

	reg := &models.PlayerRegistration{
		ID:                   uuid.NewString(),
		TournamentID:         tournament.ID,
		TournamentName:       tournament.Name,
		PlayerName:           playerName,
		PlayerEmail:          trimmedOrNil(input.PlayerEmail),
		RegistrationDate:     s.now().UTC(),
		FeePaid:              input.FeePaid,
		Gender:               trimmedOrNil(input.Gender),
		DOB:                  trimmedOrNil(input.DOB),
		Organization:         trimmedOrNil(input.Organization),
		Mobile:               trimmedOrNil(input.Mobile),
		FideRating:           models.DefaultFideRating,
		FideID:               models.DefaultFideID,
		PaymentScreenshotURL: trimmedOrNil(input.PaymentScreenshotURL),
	}
	if input.FideRating != nil {
		reg.FideRating = *input.FideRating
	}
	if id := derefString(trimmedOrNil(input.FideID)); id != "" {
		reg.FideID = id
	}
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrRegistrationInvalidTournament) {
			return nil, ErrTournamentNotFound
		}
		return nil, storeError("failed to create registration", err)
	}
	s.logger.InfoContext(ctx, "Player registered",
		slog.String("registration_id", reg.ID), slog.String("tournament_id", reg.TournamentID))

	if s.notifier != nil && reg.PlayerEmail != nil {
		if err := s.notifier.SendRegistrationConfirmation(ctx, reg, tournament); err != nil {
			s.logger.WarnContext(ctx, "Failed to send registration confirmation",
				slog.String("registration_id", reg.ID), slog.Any("error", err))
		}
	}
	s.syncRoster(ctx, reg.TournamentID)
	return reg, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error) {
	list, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, storeError("failed to list registrations", err)
	}
	return list, nil
}

func (s *registrationService) Update(ctx context.Context, id string, input UpdateRegistrationInput) (*models.PlayerRegistration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, storeError("failed to load registration", err)
	}
	prevName, prevRating := reg.PlayerName, reg.FideRating

	if input.PlayerName != nil {
		reg.PlayerName = strings.TrimSpace(*input.PlayerName)
	}
	if input.PlayerEmail != nil {
		reg.PlayerEmail = trimmedOrNil(input.PlayerEmail)
	}
	if input.FeePaid != nil {
		reg.FeePaid = *input.FeePaid
	}
	if input.Gender != nil {
		reg.Gender = trimmedOrNil(input.Gender)
	}
	if input.DOB != nil {
		reg.DOB = trimmedOrNil(input.DOB)
	}
	if input.Organization != nil {
		reg.Organization = trimmedOrNil(input.Organization)
	}
	if input.Mobile != nil {
		reg.Mobile = trimmedOrNil(input.Mobile)
	}
	if input.FideRating != nil {
		reg.FideRating = *input.FideRating
	}
	if input.FideID != nil {
		reg.FideID = derefString(trimmedOrNil(input.FideID))
		if reg.FideID == "" {
			reg.FideID = models.DefaultFideID
		}
	}
	if input.PaymentScreenshotURL != nil {
		reg.PaymentScreenshotURL = trimmedOrNil(input.PaymentScreenshotURL)
	}
	if reg.PlayerName == "" {
		return nil, ErrPlayerNameRequired
	}
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}

	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, storeError("failed to update registration", err)
	}

	if reg.PlayerName != prevName || reg.FideRating != prevRating {
		s.syncRoster(ctx, reg.TournamentID)
	}
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return storeError("failed to load registration", err)
	}
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return storeError("failed to delete registration", err)
	}
	s.syncRoster(ctx, reg.TournamentID)
	return nil
}

func (s *registrationService) syncRoster(ctx context.Context, tournamentID string) {
	if s.syncer == nil {
		return
	}
	if _, err := s.syncer.SyncWithRoster(ctx, tournamentID); err != nil {
		s.logger.WarnContext(ctx, "Score table sync failed", slog.String("tournament_id", tournamentID), slog.Any("error", err))
	}
}

func validateRegistration(reg *models.PlayerRegistration) error {
	if reg.FideRating < 0 {
		return fmt.Errorf("%w: fideRating must not be negative", ErrValidationFailed)
	}
	if reg.DOB != nil {
		if _, err := time.Parse(time.DateOnly, *reg.DOB); err != nil {
			return fmt.Errorf("%w: dob must be YYYY-MM-DD", ErrValidationFailed)
		}
	}
	return nil
}
