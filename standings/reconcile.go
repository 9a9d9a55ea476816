package standings

import (
	"reflect"

	"github.com/Dosada05/chessmate-central/models"
)

// Reconcile merges the current roster into a score table.
//
// Entries of players that are no longer registered are dropped, surviving
// entries get the registration's name and rating and are padded with nil or
// truncated to totalRounds, and every newly registered player gets an entry of
// totalRounds unplayed rounds. Totals are recomputed for every entry.
// existing may be nil. The input is never modified.
func Reconcile(existing *models.TournamentResult, tournamentID string, players []models.PlayerRegistration, totalRounds int) *models.TournamentResult {
	if totalRounds < 0 {
		totalRounds = 0
	}

	roster := make(map[string]*models.PlayerRegistration, len(players))
	for i := range players {
		if _, ok := roster[players[i].ID]; !ok {
			roster[players[i].ID] = &players[i]
		}
	}

	out := &models.TournamentResult{
		TournamentID: tournamentID,
		PlayerScores: make(models.PlayerScores, 0, len(roster)),
	}

	emitted := make(map[string]struct{}, len(roster))
	if existing != nil {
		out.Version = existing.Version
		for _, ps := range existing.PlayerScores {
			reg, registered := roster[ps.PlayerID]
			if !registered {
				continue
			}
			if _, done := emitted[ps.PlayerID]; done {
				continue
			}
			emitted[ps.PlayerID] = struct{}{}

			entry := ps.Clone()
			entry.PlayerName = reg.PlayerName
			entry.FideRating = rating(reg.FideRating)
			entry.RoundScores = resizeRounds(entry.RoundScores, totalRounds)
			entry.TotalScore = TotalScore(entry.RoundScores)
			out.PlayerScores = append(out.PlayerScores, entry)
		}
	}

	for _, reg := range players {
		if _, done := emitted[reg.ID]; done {
			continue
		}
		emitted[reg.ID] = struct{}{}
		out.PlayerScores = append(out.PlayerScores, models.PlayerScore{
			PlayerID:    reg.ID,
			PlayerName:  reg.PlayerName,
			FideRating:  rating(reg.FideRating),
			RoundScores: make([]*float64, totalRounds),
			TotalScore:  0,
		})
	}

	return out
}

// SameScores reports whether two tables hold identical entries in the same order.
// Versions are ignored.
func SameScores(a, b *models.TournamentResult) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.TournamentID != b.TournamentID || len(a.PlayerScores) != len(b.PlayerScores) {
		return false
	}
	return reflect.DeepEqual(a.PlayerScores, b.PlayerScores)
}

func resizeRounds(rounds []*float64, n int) []*float64 {
	if rounds != nil && len(rounds) >= n {
		return rounds[:n:n]
	}
	out := make([]*float64, n)
	copy(out, rounds)
	return out
}

func rating(v float64) *float64 {
	return &v
}
