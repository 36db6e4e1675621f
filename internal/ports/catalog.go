package ports

import (
	"context"

	"github.com/randomtoy/roulette/internal/domain"
)

// CatalogSource produces the catalog served for the lifetime of the process.
type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
