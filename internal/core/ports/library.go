package ports

import (
	"context"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// LibrarySnapshot is the serializable state a persistence collaborator may
// save and restore. The wire format is owned by the adapter.
type LibrarySnapshot struct {
	LikedPlaylistID string
	Playlists       []domain.Playlist
	History         []domain.CatalogEntry
}

// SnapshotStore persists library snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snap LibrarySnapshot) error
	Load(ctx context.Context) (LibrarySnapshot, error)
}
