// Package sqlite provides a SQLite-backed implementation of the snapshot
// store port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

// Adapter persists library snapshots. Every Save replaces the stored state
// wholesale; the snapshot is the unit of consistency, not individual rows.
type Adapter struct {
	db *sql.DB
}

var _ ports.SnapshotStore = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return a, nil
}

// Close closes the underlying connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Save(ctx context.Context, snap ports.LibrarySnapshot) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"playlist_songs", "playlists", "search_history"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	stmtPlaylist, err := tx.PrepareContext(ctx, `
		INSERT INTO playlists (id, name, liked, position) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmtPlaylist.Close()

	stmtSong, err := tx.PrepareContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, position, song_id, title, artist)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmtSong.Close()

	for pos, p := range snap.Playlists {
		liked := 0
		if p.ID == snap.LikedPlaylistID {
			liked = 1
		}
		if _, err := stmtPlaylist.ExecContext(ctx, p.ID, p.Name, liked, pos); err != nil {
			return fmt.Errorf("failed to save playlist %s: %w", p.ID, err)
		}
		for i, s := range p.Songs {
			if _, err := stmtSong.ExecContext(ctx, p.ID, i, s.ID, s.Title, s.Artist); err != nil {
				return fmt.Errorf("failed to save song %s: %w", s.ID, err)
			}
		}
	}

	stmtHistory, err := tx.PrepareContext(ctx, `
		INSERT INTO search_history (position, title, artist, artwork_url, play_uri)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmtHistory.Close()

	for i, e := range snap.History {
		if _, err := stmtHistory.ExecContext(ctx, i, e.Title, e.Artist, e.ArtworkURL, e.PlayURI); err != nil {
			return fmt.Errorf("failed to save history entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

func (a *Adapter) Load(ctx context.Context) (ports.LibrarySnapshot, error) {
	var snap ports.LibrarySnapshot

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, liked FROM playlists ORDER BY position ASC
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load playlists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Playlist
		var liked int
		if err := rows.Scan(&p.ID, &p.Name, &liked); err != nil {
			return snap, fmt.Errorf("failed to scan playlist: %w", err)
		}
		p.Songs = []domain.Song{}
		if liked == 1 {
			snap.LikedPlaylistID = p.ID
		}
		snap.Playlists = append(snap.Playlists, p)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("failed to iterate playlists: %w", err)
	}

	byID := make(map[string]int, len(snap.Playlists))
	for i, p := range snap.Playlists {
		byID[p.ID] = i
	}

	songRows, err := a.db.QueryContext(ctx, `
		SELECT playlist_id, song_id, title, artist
		FROM playlist_songs
		ORDER BY playlist_id, position ASC
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load songs: %w", err)
	}
	defer songRows.Close()

	for songRows.Next() {
		var playlistID string
		var s domain.Song
		if err := songRows.Scan(&playlistID, &s.ID, &s.Title, &s.Artist); err != nil {
			return snap, fmt.Errorf("failed to scan song: %w", err)
		}
		if i, ok := byID[playlistID]; ok {
			snap.Playlists[i].Songs = append(snap.Playlists[i].Songs, s)
		}
	}
	if err := songRows.Err(); err != nil {
		return snap, fmt.Errorf("failed to iterate songs: %w", err)
	}

	historyRows, err := a.db.QueryContext(ctx, `
		SELECT title, artist, artwork_url, play_uri
		FROM search_history
		ORDER BY position ASC
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load history: %w", err)
	}
	defer historyRows.Close()

	for historyRows.Next() {
		var e domain.CatalogEntry
		if err := historyRows.Scan(&e.Title, &e.Artist, &e.ArtworkURL, &e.PlayURI); err != nil {
			return snap, fmt.Errorf("failed to scan history entry: %w", err)
		}
		snap.History = append(snap.History, e)
	}
	if err := historyRows.Err(); err != nil {
		return snap, fmt.Errorf("failed to iterate history: %w", err)
	}

	return snap, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		liked INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS playlist_songs (
		playlist_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		song_id TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		PRIMARY KEY (playlist_id, position),
		FOREIGN KEY(playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS search_history (
		position INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		artwork_url TEXT,
		play_uri TEXT
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
