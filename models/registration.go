package models

import "time"

const (
	DefaultFideID     = "-"
	DefaultFideRating = 0
)

// PlayerRegistration is one player's entry into a tournament.
type PlayerRegistration struct {
	ID                   string    `json:"id" db:"id"`
	TournamentID         string    `json:"tournamentId" db:"tournament_id"`
	TournamentName       string    `json:"tournamentName" db:"tournament_name"`
	PlayerName           string    `json:"playerName" db:"player_name"`
	PlayerEmail          *string   `json:"playerEmail,omitempty" db:"player_email"`
	RegistrationDate     time.Time `json:"registrationDate" db:"registration_date"`
	FeePaid              bool      `json:"feePaid" db:"fee_paid"`
	Gender               *string   `json:"gender,omitempty" db:"gender"`
	DOB                  *string   `json:"dob,omitempty" db:"dob"` // YYYY-MM-DD
	Organization         *string   `json:"organization,omitempty" db:"organization"`
	Mobile               *string   `json:"mobile,omitempty" db:"mobile"`
	FideRating           float64   `json:"fideRating" db:"fide_rating"`
	FideID               string    `json:"fideId" db:"fide_id"`
	PaymentScreenshotURL *string   `json:"paymentScreenshotUrl,omitempty" db:"payment_screenshot_url"`
}
