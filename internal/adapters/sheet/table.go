package sheet

import (
	"strings"

	"github.com/bft-labs/sheetmail/internal/domain"
)

const utf8BOM = "\ufeff"

// grid is a raw cell table. lines holds the 1-based source line of each row
// when it differs from its position, as with CSV files that contain blank lines.
type grid struct {
	rows  [][]string
	lines []int
}

func (g grid) line(i int) int {
	if i < len(g.lines) {
		return g.lines[i]
	}
	return i + 1
}

// parseTable maps a raw cell grid onto recipients.
func parseTable(g grid) ([]domain.Recipient, error) {
	rows := g.rows
	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &domain.MissingColumnsError{Missing: append([]string(nil), domain.RequiredColumns...)}
	}

	index, err := headerIndex(rows[headerAt])
	if err != nil {
		return nil, err
	}

	recipients := make([]domain.Recipient, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		recipients = append(recipients, domain.Recipient{
			Row:     g.line(i),
			Address: cell(row, index[domain.ColumnAddress]),
			Name:    cell(row, index[domain.ColumnName]),
			Message: cell(row, index[domain.ColumnMessage]),
		})
	}
	return recipients, nil
}

// headerIndex locates the required columns. The first occurrence wins on duplicates.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(domain.RequiredColumns))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Missing: missing}
	}
	return index, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
