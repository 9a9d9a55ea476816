package services

import (
	"sort"
	"strings"

	"github.com/Dosada05/chessmate-central/models"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimmedOrNil drops empty optional strings so they are stored as NULL.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusUpcoming:  {models.StatusActive, models.StatusCancelled},
		models.StatusActive:    {models.StatusCompleted, models.StatusCancelled},
		models.StatusCompleted: {},
		models.StatusCancelled: {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

var statusDisplayOrder = map[models.TournamentStatus]int{
	models.StatusUpcoming:  0,
	models.StatusActive:    1,
	models.StatusCompleted: 2,
	models.StatusCancelled: 3,
}

// sortForDisplay: upcoming and active by start date, finished ones most recent first,
// cancelled ones by name.
func sortForDisplay(list []models.Tournament) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if oa, ob := statusDisplayOrder[a.Status], statusDisplayOrder[b.Status]; oa != ob {
			return oa < ob
		}
		switch a.Status {
		case models.StatusUpcoming, models.StatusActive:
			if !a.StartDate.Equal(b.StartDate) {
				return a.StartDate.Before(b.StartDate)
			}
		case models.StatusCompleted:
			if !a.EndDate.Equal(b.EndDate) {
				return a.EndDate.After(b.EndDate)
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// splitTags accepts the comma separated form used by the admin editor.
func splitTags(raw string) []string {
	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
