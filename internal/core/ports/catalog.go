package ports

import (
	"context"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// CatalogProvider resolves songs against the music-catalog search API.
type CatalogProvider interface {
	// Search runs a free-text query and returns ranked entries, capped at the
	// provider's display limit. An empty result is success.
	Search(ctx context.Context, query string) ([]domain.CatalogEntry, error)

	// Resolve issues a targeted query for a candidate and returns the top
	// match, or nil when the catalog has no confident result. A nil entry is
	// not an error.
	Resolve(ctx context.Context, title, artist string) (*domain.CatalogEntry, error)
}
