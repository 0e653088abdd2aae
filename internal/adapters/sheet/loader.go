package sheet

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// Extensions lists the file extensions Load accepts, for file pickers.
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

type readFunc func(path string) (grid, error)

// Loader implements ports.RecipientLoader.
type Loader struct {
	logger  ports.Logger
	readers map[string]readFunc
}

// NewLoader creates a loader with every supported format registered.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		logger: logger,
		readers: map[string]readFunc{
			".xlsx": readXLSX,
			".xlsm": readXLSX,
			".xls":  readXLS,
			".csv":  readCSV,
		},
	}
}

// Load reads path and returns its recipients in row order.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Recipient, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	ext := strings.ToLower(filepath.Ext(path))
	read, ok := l.readers[ext]
	if !ok {
		return nil, &domain.LoadError{Path: path, Err: fmt.Errorf("unsupported file type %q", ext)}
	}

	g, err := read(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	recipients, err := parseTable(g)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("input loaded",
		log.String("path", path),
		log.Int("rows", len(recipients)),
	)
	return recipients, nil
}

// Supported reports whether Load understands the extension of path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

var _ ports.RecipientLoader = (*Loader)(nil)
