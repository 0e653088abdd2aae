package sheet

import (
	"errors"
	"fmt"

	"github.com/extrame/xls"
)

func readXLS(path string) (g grid, err error) {
	// extrame/xls panics on some malformed BIFF records
	defer func() {
		if r := recover(); r != nil {
			g, err = grid{}, fmt.Errorf("parse xls: %v", r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return grid{}, err
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return grid{}, errors.New("workbook has no sheets")
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return grid{rows: rows}, nil
}
