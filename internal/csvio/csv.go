// Package csvio imports and exports guest data as CSV.
//
// The layout has fixed columns Name, Intimacy and Dietary_Restrictions
// (semicolon separated), plus one column per menu item holding ratings
// 1-5; blank cells mean the guest never rated that item.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fete/internal/models"
)

const (
	colName    = "Name"
	colIntim   = "Intimacy"
	colDietary = "Dietary_Restrictions"
)

// ImportStats accounts for every row of an import.
type ImportStats struct {
	TotalRows int      `json:"total_rows"`
	Imported  int      `json:"imported"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Import parses guests from CSV. Rows that fail validation are counted
// and described in the stats but never abort the import; only a malformed
// file (bad header, unreadable CSV) is an error.
func Import(r io.Reader) ([]models.Guest, *ImportStats, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameIdx, intimacyIdx, dietaryIdx := -1, -1, -1
	var foodCols []int
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case colName:
			nameIdx = i
		case colIntim:
			intimacyIdx = i
		case colDietary:
			dietaryIdx = i
		default:
			foodCols = append(foodCols, i)
		}
	}
	if nameIdx < 0 || intimacyIdx < 0 {
		return nil, nil, fmt.Errorf("missing required columns %s and %s", colName, colIntim)
	}

	stats := &ImportStats{}
	var guests []models.Guest

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		stats.TotalRows++

		guest, err := parseRow(row, header, nameIdx, intimacyIdx, dietaryIdx, foodCols)
		if err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		guests = append(guests, guest)
		stats.Imported++
	}

	return guests, stats, nil
}

func parseRow(row, header []string, nameIdx, intimacyIdx, dietaryIdx int, foodCols []int) (models.Guest, error) {
	if nameIdx >= len(row) || intimacyIdx >= len(row) {
		return models.Guest{}, fmt.Errorf("too few fields")
	}

	name := strings.TrimSpace(row[nameIdx])
	if name == "" {
		return models.Guest{}, fmt.Errorf("missing name")
	}

	intimacy, err := strconv.Atoi(strings.TrimSpace(row[intimacyIdx]))
	if err != nil {
		return models.Guest{}, fmt.Errorf("invalid intimacy %q", row[intimacyIdx])
	}

	var dietary []string
	if dietaryIdx >= 0 && dietaryIdx < len(row) {
		for _, tag := range strings.Split(row[dietaryIdx], ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				dietary = append(dietary, tag)
			}
		}
	}

	// Blank or out-of-range ratings are skipped, not fatal: a sparse
	// preference map is valid guest data.
	prefs := make(map[string]int)
	for _, i := range foodCols {
		if i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		rating, err := strconv.Atoi(cell)
		if err != nil || rating < models.MinPreference || rating > models.MaxPreference {
			continue
		}
		prefs[header[i]] = rating
	}

	return models.NewGuest(name, prefs, intimacy, dietary)
}

// Export writes guests as CSV with one rating column per name in foods,
// in the given order. Unrated cells are left blank.
func Export(w io.Writer, guests []models.Guest, foods []string) error {
	writer := csv.NewWriter(w)

	header := append([]string{colName, colIntim, colDietary}, foods...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, g := range guests {
		row := make([]string, 0, len(header))
		row = append(row, g.Name, strconv.Itoa(g.Intimacy), strings.Join(g.DietaryTags, ";"))
		for _, food := range foods {
			if rating, ok := g.Preferences[food]; ok {
				row = append(row, strconv.Itoa(rating))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write guest %q: %w", g.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
