package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

// Library is the single owner of all playlists, including the distinguished
// liked-songs playlist. All mutation happens under its lock; readers only
// ever receive copies, so nothing outside the store can alias its state.
type Library struct {
	mu        sync.Mutex
	likedID   string
	order     []string
	playlists map[string]*domain.Playlist
	onChange  func(ports.LibrarySnapshot)
}

// NewLibrary constructs a store with the liked-songs playlist already
// present.
func NewLibrary() *Library {
	liked := &domain.Playlist{
		ID:    uuid.New().String(),
		Name:  domain.LikedPlaylistName,
		Songs: []domain.Song{},
	}
	return &Library{
		likedID:   liked.ID,
		order:     []string{liked.ID},
		playlists: map[string]*domain.Playlist{liked.ID: liked},
	}
}

// OnChange registers a hook invoked with a snapshot after every mutation.
// The hook runs after the store lock is released, so it may read other
// stores; persistence wiring hands the snapshot to a background worker.
func (l *Library) OnChange(fn func(ports.LibrarySnapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// LikeSong inserts the song into the liked-songs playlist unless an entry
// with the same identity already exists. It reports whether the song was
// added; the no-op makes repeated likes idempotent.
func (l *Library) LikeSong(song domain.Song) bool {
	l.mu.Lock()
	added := l.playlists[l.likedID].AddUnique(l.own(song))
	var fire func()
	if added {
		fire = l.hookLocked()
	}
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
	return added
}

// CreatePlaylist creates an empty playlist with a fresh id. Names need not be
// unique, only non-empty after trimming.
func (l *Library) CreatePlaylist(name string) (domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Playlist{}, fmt.Errorf("service: playlist name: %w", domain.ErrEmptyInput)
	}

	p, err := domain.NewPlaylist(uuid.New().String(), name)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: %w", err)
	}

	l.mu.Lock()
	l.playlists[p.ID] = p
	l.order = append(l.order, p.ID)
	out := p.Clone()
	fire := l.hookLocked()
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
	return out, nil
}

// AddSong appends the song to the referenced playlist. Ordinary playlists
// permit duplicates; the user asked for them explicitly. The liked-songs
// playlist keeps one entry per identity no matter which path inserts into it.
func (l *Library) AddSong(playlistID string, song domain.Song) error {
	l.mu.Lock()
	p, ok := l.playlists[playlistID]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("service: playlist %q: %w", playlistID, domain.ErrPlaylistNotFound)
	}

	changed := true
	if playlistID == l.likedID {
		changed = p.AddUnique(l.own(song))
	} else {
		p.AddSong(l.own(song))
	}
	var fire func()
	if changed {
		fire = l.hookLocked()
	}
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
	return nil
}

// Playlist returns a copy of the playlist with the given id.
func (l *Library) Playlist(id string) (domain.Playlist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.playlists[id]
	if !ok {
		return domain.Playlist{}, fmt.Errorf("service: playlist %q: %w", id, domain.ErrPlaylistNotFound)
	}
	return p.Clone(), nil
}

// Playlists returns copies of all playlists, liked songs first, then in
// creation order.
func (l *Library) Playlists() []domain.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Playlist, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.playlists[id].Clone())
	}
	return out
}

// LikedSongs returns a copy of the liked-songs playlist.
func (l *Library) LikedSongs() domain.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playlists[l.likedID].Clone()
}

// Export produces a snapshot for the persistence collaborator. The history
// sequence is filled in by the caller that owns the search history.
func (l *Library) Export() ports.LibrarySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.export()
}

// Import replaces the store contents with a previously exported snapshot.
// A snapshot without a liked playlist gets a fresh empty one.
func (l *Library) Import(snap ports.LibrarySnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.playlists = make(map[string]*domain.Playlist, len(snap.Playlists))
	l.order = make([]string, 0, len(snap.Playlists))
	l.likedID = ""
	for _, p := range snap.Playlists {
		cloned := p.Clone()
		l.playlists[p.ID] = &cloned
		l.order = append(l.order, p.ID)
		if p.ID == snap.LikedPlaylistID {
			l.likedID = p.ID
		}
	}

	if l.likedID == "" {
		liked := &domain.Playlist{
			ID:    uuid.New().String(),
			Name:  domain.LikedPlaylistName,
			Songs: []domain.Song{},
		}
		l.likedID = liked.ID
		l.playlists[liked.ID] = liked
		l.order = append([]string{liked.ID}, l.order...)
	}
}

// own copies the song into store ownership, minting a surrogate id when the
// caller did not provide one.
func (l *Library) own(song domain.Song) domain.Song {
	if song.ID == "" {
		song.ID = uuid.New().String()
	}
	return song
}

func (l *Library) export() ports.LibrarySnapshot {
	playlists := make([]domain.Playlist, 0, len(l.order))
	for _, id := range l.order {
		playlists = append(playlists, l.playlists[id].Clone())
	}
	return ports.LibrarySnapshot{
		LikedPlaylistID: l.likedID,
		Playlists:       playlists,
	}
}

// hookLocked captures the registered hook and a snapshot while the lock is
// held. The caller invokes the returned closure after unlocking, so a hook
// that reads another lock-guarded store cannot deadlock against it.
func (l *Library) hookLocked() func() {
	if l.onChange == nil {
		return nil
	}
	fn := l.onChange
	snap := l.export()
	return func() { fn(snap) }
}
