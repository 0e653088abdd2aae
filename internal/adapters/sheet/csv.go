package sheet

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// readCSV records the source line of every record, since blank lines are
// skipped by the reader.
func readCSV(path string) (grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid{}, err
	}
	defer f.Close()

	r := gocsv.DefaultCSVReader(f)
	cr, positioned := r.(*csv.Reader)
	if positioned {
		// ragged rows are padded by parseTable
		cr.FieldsPerRecord = -1
	}

	var g grid
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return g, nil
		}
		if err != nil {
			return grid{}, err
		}
		line := len(g.rows) + 1
		if positioned {
			line, _ = cr.FieldPos(0)
		}
		g.rows = append(g.rows, record)
		g.lines = append(g.lines, line)
	}
}
