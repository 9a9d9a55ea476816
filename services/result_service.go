package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/chessmate-central/metrics"
	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/repositories"
	"github.com/Dosada05/chessmate-central/standings"
)

const DefaultResultMaxRetries = 5

// StandingsPublisher receives the ranked table after every accepted write.
type StandingsPublisher interface {
	PublishStandings(tournamentID string, rows interface{})
}

type ResultService interface {
	// Get returns the stored table, or an empty one if none exists yet.
	Get(ctx context.Context, tournamentID string) (*models.TournamentResult, error)
	// Save replaces the whole table. A non-zero Version makes the write conditional.
	Save(ctx context.Context, tournamentID string, input *models.TournamentResult) (*models.TournamentResult, error)
	Reconcile(ctx context.Context, tournamentID string, players []models.PlayerRegistration, totalRounds int) (*models.TournamentResult, error)
	// SyncWithRoster reconciles the table against the stored tournament and registrations.
	SyncWithRoster(ctx context.Context, tournamentID string) (*models.TournamentResult, error)
	SetRoundScore(ctx context.Context, tournamentID, playerID string, roundIndex int, score *float64) (*models.TournamentResult, error)
	Standings(ctx context.Context, tournamentID string, tieBreak standings.TieBreak) ([]models.Standing, error)
}

type ResultServiceConfig struct {
	MaxRetries int
	TieBreak   standings.TieBreak
}

type resultService struct {
	resultRepo       repositories.ResultRepository
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	publisher        StandingsPublisher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	ranker           *standings.Ranker
	maxRetries       int
}

func NewResultService(
	resultRepo repositories.ResultRepository,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	publisher StandingsPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg ResultServiceConfig,
) ResultService {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultResultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &resultService{
		resultRepo:       resultRepo,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		publisher:        publisher,
		metrics:          m,
		logger:           logger,
		ranker:           standings.NewRanker(cfg.TieBreak),
		maxRetries:       cfg.MaxRetries,
	}
}

func (s *resultService) Get(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	res, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return models.EmptyResult(tournamentID), nil
	}
	return res, nil
}

func (s *resultService) Save(ctx context.Context, tournamentID string, input *models.TournamentResult) (*models.TournamentResult, error) {
	if input == nil || input.TournamentID != tournamentID {
		return nil, ErrTournamentIDMismatch
	}
	normalized, err := standings.Normalize(input)
	if err != nil {
		return nil, err
	}

	tournament, players, err := s.loadRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := checkAgainstRoster(normalized, players, tournament.TotalRounds); err != nil {
		return nil, err
	}
	// игроки из ростера, которых нет в теле, получают пустые раунды
	next := standings.Reconcile(normalized, tournamentID, players, tournament.TotalRounds)

	if input.Version > 0 {
		err = s.resultRepo.Update(ctx, next, input.Version)
	} else {
		err = s.resultRepo.Upsert(ctx, next)
	}
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrResultVersionConflict):
		s.metrics.ResultWrite("save", metrics.OutcomeConflict)
		return nil, ErrResultConflict
	default:
		s.metrics.ResultWrite("save", metrics.OutcomeError)
		return nil, storeError("failed to save tournament result", err)
	}

	s.metrics.ResultWrite("save", metrics.OutcomeWritten)
	s.publish(next)
	return next, nil
}

func (s *resultService) Reconcile(ctx context.Context, tournamentID string, players []models.PlayerRegistration, totalRounds int) (*models.TournamentResult, error) {
	return s.writeWithRetry(ctx, "reconcile", tournamentID, func(current *models.TournamentResult) (*models.TournamentResult, bool, error) {
		next := standings.Reconcile(current, tournamentID, players, totalRounds)
		if current == nil {
			// таблица создаётся только когда есть игроки и раунды
			return next, len(players) > 0 && totalRounds > 0, nil
		}
		if standings.SameScores(current, next) {
			return current, false, nil
		}
		return next, true, nil
	})
}

func (s *resultService) SyncWithRoster(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	tournament, players, err := s.loadRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, tournamentID, players, tournament.TotalRounds)
}

// loadRoster fetches the tournament and its registrations in parallel.
func (s *resultService) loadRoster(ctx context.Context, tournamentID string) (*models.Tournament, []models.PlayerRegistration, error) {
	var (
		tournament *models.Tournament
		players    []models.PlayerRegistration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return storeError("failed to load tournament", err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.registrationRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return storeError("failed to load registrations", err)
		}
		players = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tournament, players, nil
}

// checkAgainstRoster rejects entries for players who are not registered and
// entries whose round count differs from the tournament's.
func checkAgainstRoster(res *models.TournamentResult, players []models.PlayerRegistration, totalRounds int) error {
	registered := make(map[string]struct{}, len(players))
	for _, p := range players {
		registered[p.ID] = struct{}{}
	}
	for _, ps := range res.PlayerScores {
		if _, ok := registered[ps.PlayerID]; !ok {
			return fmt.Errorf("%w: player %s is not registered for the tournament", ErrValidationFailed, ps.PlayerID)
		}
		if len(ps.RoundScores) != totalRounds {
			return fmt.Errorf("%w: player %s has %d rounds, tournament has %d",
				standings.ErrRoundOutOfRange, ps.PlayerID, len(ps.RoundScores), totalRounds)
		}
	}
	return nil
}

func (s *resultService) SetRoundScore(ctx context.Context, tournamentID, playerID string, roundIndex int, score *float64) (*models.TournamentResult, error) {
	return s.writeWithRetry(ctx, "score", tournamentID, func(current *models.TournamentResult) (*models.TournamentResult, bool, error) {
		if current == nil {
			return nil, false, ErrResultNotFound
		}
		return standings.ApplyRoundScore(current, playerID, roundIndex, score)
	})
}

func (s *resultService) Standings(ctx context.Context, tournamentID string, tieBreak standings.TieBreak) ([]models.Standing, error) {
	res, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	ranker := s.ranker
	if tieBreak != "" && tieBreak != ranker.TieBreak() {
		ranker = standings.NewRanker(tieBreak)
	}
	return ranker.Rank(res), nil
}

// load returns nil without error when the tournament has no table yet.
func (s *resultService) load(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	res, err := s.resultRepo.Get(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, nil
		}
		return nil, storeError("failed to load tournament result", err)
	}
	return res, nil
}

// mutation builds the next table from the current one (nil if absent) and
// reports whether it has to be written.
type mutation func(current *models.TournamentResult) (*models.TournamentResult, bool, error)

// writeWithRetry runs read-modify-write as a compare-and-swap on the table
// version, reloading and reapplying the mutation after a concurrent write.
func (s *resultService) writeWithRetry(ctx context.Context, op, tournamentID string, mutate mutation) (*models.TournamentResult, error) {
	for attempt := 1; ; attempt++ {
		current, err := s.load(ctx, tournamentID)
		if err != nil {
			s.metrics.ResultWrite(op, metrics.OutcomeError)
			return nil, err
		}

		next, write, err := mutate(current)
		if err != nil {
			return nil, err
		}
		if !write {
			s.metrics.ResultWrite(op, metrics.OutcomeUnchanged)
			return next, nil
		}

		if current == nil {
			err = s.resultRepo.Create(ctx, next)
		} else {
			err = s.resultRepo.Update(ctx, next, current.Version)
		}

		switch {
		case err == nil:
			s.metrics.ResultWrite(op, metrics.OutcomeWritten)
			s.publish(next)
			return next, nil

		case errors.Is(err, repositories.ErrResultVersionConflict):
			if attempt >= s.maxRetries {
				s.metrics.ResultWrite(op, metrics.OutcomeConflict)
				s.logger.WarnContext(ctx, "Giving up on tournament result write",
					slog.String("op", op), slog.String("tournament_id", tournamentID), slog.Int("attempts", attempt))
				return nil, fmt.Errorf("%w (after %d attempts)", ErrResultConflict, attempt)
			}
			s.metrics.CASRetry()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

		default:
			s.metrics.ResultWrite(op, metrics.OutcomeError)
			return nil, storeError("failed to save tournament result", err)
		}
	}
}

func (s *resultService) publish(res *models.TournamentResult) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishStandings(res.TournamentID, s.ranker.Rank(res))
}
