package models

import "time"

// TournamentStatus is the lifecycle state of a tournament.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "Upcoming"
	StatusActive    TournamentStatus = "Active"
	StatusCompleted TournamentStatus = "Completed"
	StatusCancelled TournamentStatus = "Cancelled"
)

// TournamentType is the pairing system announced for a tournament.
type TournamentType string

const (
	TypeSwiss        TournamentType = "Swiss"
	TypeRoundRobin   TournamentType = "Round Robin"
	TypeKnockout     TournamentType = "Knockout"
	TypeArena        TournamentType = "Arena"
	TypeScheveningen TournamentType = "Scheveningen"
	TypeOther        TournamentType = "Other"
)

var TournamentTypes = []TournamentType{
	TypeSwiss, TypeRoundRobin, TypeKnockout, TypeArena, TypeScheveningen, TypeOther,
}

var TournamentStatuses = []TournamentStatus{
	StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled,
}

func (t TournamentType) IsValid() bool {
	for _, v := range TournamentTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s TournamentStatus) IsValid() bool {
	for _, v := range TournamentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Tournament представляет турнир.
type Tournament struct {
	ID          string           `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Type        TournamentType   `json:"type" db:"type"`
	Location    string           `json:"location" db:"location"`
	StartDate   time.Time        `json:"startDate" db:"start_date"`
	EndDate     time.Time        `json:"endDate" db:"end_date"`
	EntryFee    float64          `json:"entryFee" db:"entry_fee"`
	PrizeFund   float64          `json:"prizeFund" db:"prize_fund"`
	TimeControl string           `json:"timeControl" db:"time_control"`
	Description string           `json:"description" db:"description"`
	Status      TournamentStatus `json:"status" db:"status"`
	TotalRounds int              `json:"totalRounds" db:"total_rounds"`
	ImageURL    *string          `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}

// RoundsConfigured reports whether score entry is possible for the tournament.
func (t Tournament) RoundsConfigured() bool {
	return t.TotalRounds > 0
}
