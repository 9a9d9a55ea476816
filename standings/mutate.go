package standings

import (
	"fmt"

	"github.com/Dosada05/chessmate-central/models"
)

// ApplyRoundScore sets one round result of one player and recomputes that
// player's total. It returns the updated copy and whether anything changed;
// on error the input is left as is and no copy is returned.
func ApplyRoundScore(result *models.TournamentResult, playerID string, roundIndex int, score *float64) (*models.TournamentResult, bool, error) {
	if !ValidScore(score) {
		return nil, false, ErrInvalidScore
	}

	idx := -1
	for i := range result.PlayerScores {
		if result.PlayerScores[i].PlayerID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, fmt.Errorf("%w: %s", ErrPlayerScoreNotFound, playerID)
	}

	rounds := len(result.PlayerScores[idx].RoundScores)
	if rounds == 0 {
		return nil, false, ErrRoundsNotConfigured
	}
	if roundIndex < 0 || roundIndex >= rounds {
		return nil, false, fmt.Errorf("%w: %d not in [0, %d)", ErrRoundOutOfRange, roundIndex, rounds)
	}

	if sameScore(result.PlayerScores[idx].RoundScores[roundIndex], score) {
		return result, false, nil
	}

	out := result.Clone()
	ps := &out.PlayerScores[idx]
	if score == nil {
		ps.RoundScores[roundIndex] = nil
	} else {
		ps.RoundScores[roundIndex] = Score(*score)
	}
	ps.TotalScore = TotalScore(ps.RoundScores)
	return out, true, nil
}

func sameScore(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
