package standings

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dosada05/chessmate-central/models"
)

// TieBreak selects how players with equal totals are ordered.
type TieBreak string

const (
	// TieBreakName orders equal totals by player name, case-insensitively.
	TieBreakName TieBreak = "name"
	// TieBreakRating orders equal totals by rating (highest first), then by name.
	TieBreakRating TieBreak = "rating"
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakName:
		return TieBreakName, nil
	case TieBreakRating:
		return TieBreakRating, nil
	}
	return "", fmt.Errorf("unknown tie-break %q (expected %q or %q)", s, TieBreakName, TieBreakRating)
}

type Ranker struct {
	tieBreak TieBreak
}

func NewRanker(tb TieBreak) *Ranker {
	if tb == "" {
		tb = TieBreakName
	}
	return &Ranker{tieBreak: tb}
}

func (r *Ranker) TieBreak() TieBreak {
	return r.tieBreak
}

// Rank orders all entries by total score, highest first. Every entry gets its
// own position: equal totals are split by the tie-break and finally by player id.
func (r *Ranker) Rank(result *models.TournamentResult) []models.Standing {
	if result == nil {
		return []models.Standing{}
	}

	rows := make([]models.Standing, len(result.PlayerScores))
	for i, ps := range result.PlayerScores {
		rows[i] = models.Standing{PlayerScore: ps.Clone()}
	}

	// collate.Collator keeps internal buffers, one per call.
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreWidth)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].PlayerScore, rows[j].PlayerScore
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if r.tieBreak == TieBreakRating {
			ra, rb := ratingOf(a), ratingOf(b)
			if ra != rb {
				return ra > rb
			}
		}
		if c := col.CompareString(a.PlayerName, b.PlayerName); c != 0 {
			return c < 0
		}
		return a.PlayerID < b.PlayerID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func ratingOf(ps models.PlayerScore) float64 {
	if ps.FideRating == nil {
		return 0
	}
	return *ps.FideRating
}
