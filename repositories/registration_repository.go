package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/chessmate-central/models"
)

var (
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationInvalidTournament = errors.New("invalid tournament reference")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.PlayerRegistration) error
	GetByID(ctx context.Context, id string) (*models.PlayerRegistration, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error)
	Update(ctx context.Context, reg *models.PlayerRegistration) error
	Delete(ctx context.Context, id string) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

const registrationColumns = `
	id, tournament_id, tournament_name, player_name, player_email, registration_date,
	fee_paid, gender, dob, organization, mobile, fide_rating, fide_id, payment_screenshot_url`

func scanRegistration(row interface{ Scan(...interface{}) error }, p *models.PlayerRegistration) error {
	return row.Scan(
		&p.ID, &p.TournamentID, &p.TournamentName, &p.PlayerName, &p.PlayerEmail, &p.RegistrationDate,
		&p.FeePaid, &p.Gender, &p.DOB, &p.Organization, &p.Mobile, &p.FideRating, &p.FideID, &p.PaymentScreenshotURL,
	)
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, p *models.PlayerRegistration) error {
	query := `
		INSERT INTO player_registrations (
			id, tournament_id, tournament_name, player_name, player_email, registration_date,
			fee_paid, gender, dob, organization, mobile, fide_rating, fide_id, payment_screenshot_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TournamentID, p.TournamentName, p.PlayerName, p.PlayerEmail, p.RegistrationDate,
		p.FeePaid, p.Gender, p.DOB, p.Organization, p.Mobile, p.FideRating, p.FideID, p.PaymentScreenshotURL,
	)
	return r.handleRegistrationError(err)
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id string) (*models.PlayerRegistration, error) {
	query := `SELECT` + registrationColumns + ` FROM player_registrations WHERE id = $1`

	p := &models.PlayerRegistration{}
	if err := scanRegistration(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %s: %w", id, err)
	}
	return p, nil
}

// ListByTournament returns the roster of a tournament, newest registrations first.
func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error) {
	query := `SELECT` + registrationColumns + `
		FROM player_registrations
		WHERE tournament_id = $1
		ORDER BY registration_date DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	registrations := make([]models.PlayerRegistration, 0)
	for rows.Next() {
		var p models.PlayerRegistration
		if err := scanRegistration(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) Update(ctx context.Context, p *models.PlayerRegistration) error {
	query := `
		UPDATE player_registrations SET
			player_name = $1,
			player_email = $2,
			fee_paid = $3,
			gender = $4,
			dob = $5,
			organization = $6,
			mobile = $7,
			fide_rating = $8,
			fide_id = $9,
			payment_screenshot_url = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		p.PlayerName, p.PlayerEmail, p.FeePaid, p.Gender, p.DOB, p.Organization, p.Mobile,
		p.FideRating, p.FideID, p.PaymentScreenshotURL,
		p.ID,
	)
	if err != nil {
		return r.handleRegistrationError(err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM player_registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error {
	executor := executorOr(exec, r.db)
	if _, err := executor.ExecContext(ctx, `DELETE FROM player_registrations WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete registrations of tournament %s: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint := pqCode(err); code == pqForeignKeyViolation && constraint == "player_registrations_tournament_id_fkey" {
		return ErrRegistrationInvalidTournament
	}
	return fmt.Errorf("registration write failed: %w", err)
}
