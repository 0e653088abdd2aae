package ports

import (
	"context"

	"github.com/bft-labs/sheetmail/internal/domain"
)

// RecipientLoader reads the rows of an input table.
type RecipientLoader interface {
	// Load returns the rows in table order.
	// Returns *domain.MissingColumnsError when a required header field is absent
	// and *domain.LoadError when the file cannot be read.
	Load(ctx context.Context, path string) ([]domain.Recipient, error)
}
