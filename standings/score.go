// Package standings keeps tournament score tables consistent with the roster
// and derives ranked standings from them.
package standings

import (
	"errors"
	"fmt"

	"github.com/Dosada05/chessmate-central/models"
)

const (
	Loss = 0.0
	Draw = 0.5
	Win  = 1.0
)

var (
	ErrPlayerScoreNotFound  = errors.New("player has no score entry in this tournament")
	ErrRoundOutOfRange      = errors.New("round index out of range")
	ErrRoundsNotConfigured  = errors.New("tournament has no rounds configured")
	ErrInvalidScore         = errors.New("round score must be 0, 0.5, 1 or null")
	ErrDuplicatePlayerScore = errors.New("duplicate player in score table")
	ErrMissingPlayerID      = errors.New("player score entry has no playerId")
)

// Score returns a pointer to v, for building round score slices.
func Score(v float64) *float64 {
	return &v
}

func ValidScore(s *float64) bool {
	if s == nil {
		return true
	}
	switch *s {
	case Loss, Draw, Win:
		return true
	}
	return false
}

// TotalScore sums the recorded round scores, skipping unplayed rounds.
func TotalScore(roundScores []*float64) float64 {
	var total float64
	for _, s := range roundScores {
		if s != nil {
			total += *s
		}
	}
	return total
}

// Normalize recomputes every total and checks score values and player uniqueness.
// Used for full-document writes coming from clients.
func Normalize(result *models.TournamentResult) (*models.TournamentResult, error) {
	out := result.Clone()
	if out.PlayerScores == nil {
		out.PlayerScores = models.PlayerScores{}
	}
	seen := make(map[string]struct{}, len(out.PlayerScores))
	for i := range out.PlayerScores {
		ps := &out.PlayerScores[i]
		if ps.PlayerID == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingPlayerID, i)
		}
		if _, dup := seen[ps.PlayerID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerScore, ps.PlayerID)
		}
		seen[ps.PlayerID] = struct{}{}
		for round, s := range ps.RoundScores {
			if !ValidScore(s) {
				return nil, fmt.Errorf("%w (player %s, round %d)", ErrInvalidScore, ps.PlayerID, round+1)
			}
		}
		if ps.RoundScores == nil {
			ps.RoundScores = []*float64{}
		}
		ps.TotalScore = TotalScore(ps.RoundScores)
	}
	return out, nil
}
