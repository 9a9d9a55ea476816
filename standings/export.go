package standings

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/chessmate-central/models"
)

const exportSheet = "Standings"

// ExportXLSX writes ranked standings as a single-sheet workbook:
// Rank, Player, FIDE Rating, one column per round, Total.
// Unplayed rounds are left blank.
func ExportXLSX(w io.Writer, rows []models.Standing) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rounds := 0
	for _, r := range rows {
		if len(r.RoundScores) > rounds {
			rounds = len(r.RoundScores)
		}
	}

	header := []interface{}{"Rank", "Player", "FIDE Rating"}
	for i := 1; i <= rounds; i++ {
		header = append(header, fmt.Sprintf("R%d", i))
	}
	header = append(header, "Total")
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, r := range rows {
		line := []interface{}{r.Rank, r.PlayerName, nil}
		if r.FideRating != nil {
			line[2] = *r.FideRating
		}
		for round := 0; round < rounds; round++ {
			if round < len(r.RoundScores) && r.RoundScores[round] != nil {
				line = append(line, *r.RoundScores[round])
			} else {
				line = append(line, nil)
			}
		}
		line = append(line, r.TotalScore)
		if err := setRow(f, i+2, line); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheet, "B", "B", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to build cell name: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, axis, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
