package app

import (
	"github.com/gocarina/gocsv"

	"github.com/bft-labs/sheetmail/internal/domain"
)

// FailuresCSV renders the failed rows of res as CSV with the input header
// names, so the text can be saved and loaded again to retry just those rows.
func FailuresCSV(res domain.Result) (string, error) {
	if res.Failed() == 0 {
		return "", nil
	}
	return gocsv.MarshalString(&res.Failures)
}
