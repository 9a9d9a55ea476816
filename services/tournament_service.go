package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/chessmate-central/metrics"
	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/repositories"
)

// RosterSyncer brings a tournament's score table in line with its roster.
type RosterSyncer interface {
	SyncWithRoster(ctx context.Context, tournamentID string) (*models.TournamentResult, error)
}

type CreateTournamentInput struct {
	Name        string                  `json:"name"`
	Type        models.TournamentType   `json:"type"`
	Location    string                  `json:"location"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     time.Time               `json:"endDate"`
	EntryFee    float64                 `json:"entryFee"`
	PrizeFund   float64                 `json:"prizeFund"`
	TimeControl string                  `json:"timeControl"`
	Description string                  `json:"description"`
	Status      models.TournamentStatus `json:"status"`
	TotalRounds int                     `json:"totalRounds"`
	ImageURL    *string                 `json:"imageUrl"`
}

type UpdateTournamentInput struct {
	Name        *string                  `json:"name"`
	Type        *models.TournamentType   `json:"type"`
	Location    *string                  `json:"location"`
	StartDate   *time.Time               `json:"startDate"`
	EndDate     *time.Time               `json:"endDate"`
	EntryFee    *float64                 `json:"entryFee"`
	PrizeFund   *float64                 `json:"prizeFund"`
	TimeControl *string                  `json:"timeControl"`
	Description *string                  `json:"description"`
	Status      *models.TournamentStatus `json:"status"`
	TotalRounds *int                     `json:"totalRounds"`
	ImageURL    *string                  `json:"imageUrl"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error)
	Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	// PromoteDueStatuses starts tournaments whose start date passed and completes
	// those whose end date passed. Returns the number of tournaments changed.
	PromoteDueStatuses(ctx context.Context, now time.Time) (int, error)
}

type tournamentService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	resultRepo       repositories.ResultRepository
	syncer           RosterSyncer
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	resultRepo repositories.ResultRepository,
	syncer RosterSyncer,
	m *metrics.Metrics,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		resultRepo:       resultRepo,
		syncer:           syncer,
		metrics:          m,
		logger:           logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	t := &models.Tournament{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Location:    strings.TrimSpace(input.Location),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		EntryFee:    input.EntryFee,
		PrizeFund:   input.PrizeFund,
		TimeControl: strings.TrimSpace(input.TimeControl),
		Description: input.Description,
		Status:      input.Status,
		TotalRounds: input.TotalRounds,
		ImageURL:    trimmedOrNil(input.ImageURL),
	}
	if t.Type == "" {
		t.Type = models.TypeSwiss
	}
	if t.Status == "" {
		t.Status = models.StatusUpcoming
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, storeError("failed to create tournament", err)
	}
	s.logger.InfoContext(ctx, "Tournament created", slog.String("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storeError("failed to get tournament", err)
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, *status)
	}
	list, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Status: status})
	if err != nil {
		return nil, storeError("failed to list tournaments", err)
	}
	sortForDisplay(list)
	return list, nil
}

func (s *tournamentService) Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevRounds := t.TotalRounds

	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		t.Type = *input.Type
	}
	if input.Location != nil {
		t.Location = strings.TrimSpace(*input.Location)
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if input.EntryFee != nil {
		t.EntryFee = *input.EntryFee
	}
	if input.PrizeFund != nil {
		t.PrizeFund = *input.PrizeFund
	}
	if input.TimeControl != nil {
		t.TimeControl = strings.TrimSpace(*input.TimeControl)
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.ImageURL != nil {
		t.ImageURL = trimmedOrNil(input.ImageURL)
	}
	if input.TotalRounds != nil {
		t.TotalRounds = *input.TotalRounds
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, *input.Status)
		}
		if !isValidStatusTransition(t.Status, *input.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, t.Status, *input.Status)
		}
		t.Status = *input.Status
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, storeError("failed to update tournament", err)
	}

	if t.TotalRounds != prevRounds {
		s.syncRoster(ctx, t.ID)
	}
	return t, nil
}

// Delete removes the tournament together with its registrations and score table.
func (s *tournamentService) Delete(ctx context.Context, id string) (err error) {
	if _, err = s.GetByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.ErrorContext(ctx, "Rollback failed", slog.String("tournament_id", id), slog.Any("error", rbErr))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = storeError("failed to commit transaction", cErr)
		}
	}()

	if err = s.registrationRepo.DeleteByTournament(ctx, tx, id); err != nil {
		return storeError("failed to delete registrations", err)
	}
	if err = s.resultRepo.DeleteByTournament(ctx, tx, id); err != nil {
		return storeError("failed to delete tournament result", err)
	}
	if err = s.tournamentRepo.Delete(ctx, tx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentInUse):
			return ErrTournamentInUse
		}
		return storeError("failed to delete tournament", err)
	}

	s.logger.InfoContext(ctx, "Tournament deleted", slog.String("tournament_id", id))
	return nil
}

func (s *tournamentService) PromoteDueStatuses(ctx context.Context, now time.Time) (int, error) {
	due, err := s.tournamentRepo.ListDueForStatusUpdate(ctx, now)
	if err != nil {
		return 0, storeError("failed to list tournaments due for status update", err)
	}

	changed := 0
	for _, t := range due {
		// один шаг за запуск: Upcoming -> Active, затем Active -> Completed
		var next models.TournamentStatus
		switch t.Status {
		case models.StatusUpcoming:
			next = models.StatusActive
		case models.StatusActive:
			next = models.StatusCompleted
		default:
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, next); err != nil {
			s.logger.ErrorContext(ctx, "Failed to update tournament status",
				slog.String("tournament_id", t.ID), slog.String("to", string(next)), slog.Any("error", err))
			continue
		}
		s.metrics.StatusPromotion(string(next))
		s.logger.InfoContext(ctx, "Tournament status updated by scheduler",
			slog.String("tournament_id", t.ID), slog.String("from", string(t.Status)), slog.String("to", string(next)))
		changed++
	}
	return changed, nil
}

func (s *tournamentService) syncRoster(ctx context.Context, tournamentID string) {
	if s.syncer == nil {
		return
	}
	if _, err := s.syncer.SyncWithRoster(ctx, tournamentID); err != nil {
		s.logger.WarnContext(ctx, "Score table sync failed", slog.String("tournament_id", tournamentID), slog.Any("error", err))
	}
}

func validateTournament(t *models.Tournament) error {
	if t.Name == "" {
		return ErrTournamentNameRequired
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrTournamentInvalidType, t.Type)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, t.Status)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidationFailed)
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrTournamentInvalidDateRange
	}
	if t.TotalRounds < 0 {
		return ErrTournamentInvalidRounds
	}
	if t.EntryFee < 0 || t.PrizeFund < 0 {
		return fmt.Errorf("%w: entry fee and prize fund must not be negative", ErrValidationFailed)
	}
	return nil
}
