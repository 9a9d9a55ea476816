package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/chessmate-central/models"
)

var (
	ErrResultNotFound        = errors.New("tournament result not found")
	ErrResultVersionConflict = errors.New("tournament result was modified concurrently")
)

// ResultRepository stores one score table per tournament. Every write bumps
// the version; conditional writes fail with ErrResultVersionConflict when the
// stored version differs from the expected one.
type ResultRepository interface {
	Get(ctx context.Context, tournamentID string) (*models.TournamentResult, error)
	// Create inserts a new table. ErrResultVersionConflict if one already exists.
	Create(ctx context.Context, result *models.TournamentResult) error
	// Update replaces the table if its stored version equals expectedVersion.
	Update(ctx context.Context, result *models.TournamentResult, expectedVersion int64) error
	// Upsert replaces the table unconditionally.
	Upsert(ctx context.Context, result *models.TournamentResult) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Get(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	query := `SELECT tournament_id, player_scores, version FROM tournament_results WHERE tournament_id = $1`

	res := &models.TournamentResult{}
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&res.TournamentID, &res.PlayerScores, &res.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result of tournament %s: %w", tournamentID, err)
	}
	return res, nil
}

func (r *postgresResultRepository) Create(ctx context.Context, res *models.TournamentResult) error {
	query := `
		INSERT INTO tournament_results (tournament_id, player_scores, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (tournament_id) DO NOTHING
		RETURNING version`

	err := r.db.QueryRowContext(ctx, query, res.TournamentID, res.PlayerScores).Scan(&res.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResultVersionConflict
		}
		return fmt.Errorf("failed to create result of tournament %s: %w", res.TournamentID, err)
	}
	return nil
}

func (r *postgresResultRepository) Update(ctx context.Context, res *models.TournamentResult, expectedVersion int64) error {
	query := `
		UPDATE tournament_results
		SET player_scores = $2, version = version + 1, updated_at = NOW()
		WHERE tournament_id = $1 AND version = $3
		RETURNING version`

	err := r.db.QueryRowContext(ctx, query, res.TournamentID, res.PlayerScores, expectedVersion).Scan(&res.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResultVersionConflict
		}
		return fmt.Errorf("failed to update result of tournament %s: %w", res.TournamentID, err)
	}
	return nil
}

func (r *postgresResultRepository) Upsert(ctx context.Context, res *models.TournamentResult) error {
	query := `
		INSERT INTO tournament_results (tournament_id, player_scores, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (tournament_id) DO UPDATE
		SET player_scores = EXCLUDED.player_scores,
		    version = tournament_results.version + 1,
		    updated_at = NOW()
		RETURNING version`

	if err := r.db.QueryRowContext(ctx, query, res.TournamentID, res.PlayerScores).Scan(&res.Version); err != nil {
		return fmt.Errorf("failed to upsert result of tournament %s: %w", res.TournamentID, err)
	}
	return nil
}

func (r *postgresResultRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error {
	executor := executorOr(exec, r.db)
	if _, err := executor.ExecContext(ctx, `DELETE FROM tournament_results WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete result of tournament %s: %w", tournamentID, err)
	}
	return nil
}
