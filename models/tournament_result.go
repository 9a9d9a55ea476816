package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// PlayerScore holds one registered player's per-round results.
// RoundScores[i] is round i+1; nil means the game is not played or not recorded yet.
type PlayerScore struct {
	PlayerID    string     `json:"playerId"`
	PlayerName  string     `json:"playerName"`
	FideRating  *float64   `json:"fideRating,omitempty"`
	RoundScores []*float64 `json:"roundScores"`
	TotalScore  float64    `json:"totalScore"`
}

// TournamentResult is the score table of a single tournament.
type TournamentResult struct {
	TournamentID string       `json:"tournamentId" db:"tournament_id"`
	PlayerScores PlayerScores `json:"playerScores" db:"player_scores"`
	Version      int64        `json:"version,omitempty" db:"version"`
}

// PlayerScores is stored as a single JSONB column.
type PlayerScores []PlayerScore

func (ps PlayerScores) Value() (driver.Value, error) {
	if ps == nil {
		ps = PlayerScores{}
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player scores: %w", err)
	}
	return b, nil
}

func (ps *PlayerScores) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*ps = PlayerScores{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("player scores: unsupported source type")
	}
	var out PlayerScores
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal player scores: %w", err)
	}
	if out == nil {
		out = PlayerScores{}
	}
	*ps = out
	return nil
}

// Clone returns a deep copy, so pure transformations never alias caller data.
func (r *TournamentResult) Clone() *TournamentResult {
	if r == nil {
		return nil
	}
	out := &TournamentResult{
		TournamentID: r.TournamentID,
		Version:      r.Version,
		PlayerScores: make(PlayerScores, len(r.PlayerScores)),
	}
	for i, ps := range r.PlayerScores {
		out.PlayerScores[i] = ps.Clone()
	}
	return out
}

func (p PlayerScore) Clone() PlayerScore {
	out := p
	if p.FideRating != nil {
		v := *p.FideRating
		out.FideRating = &v
	}
	out.RoundScores = make([]*float64, len(p.RoundScores))
	for i, s := range p.RoundScores {
		if s != nil {
			v := *s
			out.RoundScores[i] = &v
		}
	}
	return out
}

// EmptyResult is what readers get for a tournament that has no score table yet.
func EmptyResult(tournamentID string) *TournamentResult {
	return &TournamentResult{TournamentID: tournamentID, PlayerScores: PlayerScores{}}
}

// Standing is one row of the ranked standings table.
type Standing struct {
	Rank int `json:"rank"`
	PlayerScore
}
