package sheet

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

func readXLSX(path string) (grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return grid{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return grid{}, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	return grid{rows: rows}, err
}
