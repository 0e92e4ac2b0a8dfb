package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

func TestLibrary_LikeSongIsIdempotent(t *testing.T) {
	l := NewLibrary()
	song := domain.Song{Title: "Happy", Artist: "Pharrell Williams"}

	assert.True(t, l.LikeSong(song))
	assert.False(t, l.LikeSong(song))

	liked := l.LikedSongs()
	require.Len(t, liked.Songs, 1)
	assert.Equal(t, "Happy", liked.Songs[0].Title)
	assert.NotEmpty(t, liked.Songs[0].ID, "store assigns a surrogate id")
}

func TestLibrary_LikeSongIsCaseSensitive(t *testing.T) {
	l := NewLibrary()

	assert.True(t, l.LikeSong(domain.Song{Title: "Happy", Artist: "Pharrell Williams"}))
	assert.True(t, l.LikeSong(domain.Song{Title: "happy", Artist: "Pharrell Williams"}))

	assert.Len(t, l.LikedSongs().Songs, 2)
}

func TestLibrary_CreatePlaylist(t *testing.T) {
	l := NewLibrary()

	_, err := l.CreatePlaylist("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	p, err := l.CreatePlaylist("Gym")
	require.NoError(t, err)
	assert.Equal(t, "Gym", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Empty(t, p.Songs)

	// Duplicate names are allowed; ids differ.
	p2, err := l.CreatePlaylist("Gym")
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, p2.ID)
}

func TestLibrary_AddSongAllowsDuplicates(t *testing.T) {
	l := NewLibrary()
	p, err := l.CreatePlaylist("Gym")
	require.NoError(t, err)

	song := domain.Song{Title: "Stronger", Artist: "Kanye West"}
	require.NoError(t, l.AddSong(p.ID, song))
	require.NoError(t, l.AddSong(p.ID, song))

	got, err := l.Playlist(p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Songs, 2)
}

func TestLibrary_AddSongToLikedDeduplicates(t *testing.T) {
	l := NewLibrary()
	likedID := l.LikedSongs().ID
	song := domain.Song{Title: "Happy", Artist: "Pharrell Williams"}

	// The liked playlist keeps one entry per identity even when reached by
	// its id rather than through LikeSong.
	require.NoError(t, l.AddSong(likedID, song))
	require.NoError(t, l.AddSong(likedID, song))
	assert.Len(t, l.LikedSongs().Songs, 1)

	assert.False(t, l.LikeSong(song))
	assert.Len(t, l.LikedSongs().Songs, 1)
}

func TestLibrary_AddSongUnknownPlaylist(t *testing.T) {
	l := NewLibrary()
	err := l.AddSong("nope", domain.Song{Title: "x", Artist: "y"})
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestLibrary_SnapshotsDoNotAliasStoreState(t *testing.T) {
	l := NewLibrary()
	p, err := l.CreatePlaylist("Road Trip")
	require.NoError(t, err)
	require.NoError(t, l.AddSong(p.ID, domain.Song{Title: "a", Artist: "b"}))

	snapshot, err := l.Playlist(p.ID)
	require.NoError(t, err)
	snapshot.Songs[0].Title = "mutated"

	got, err := l.Playlist(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Songs[0].Title)
}

func TestLibrary_ExportImportRoundTrip(t *testing.T) {
	l := NewLibrary()
	l.LikeSong(domain.Song{Title: "Happy", Artist: "Pharrell Williams"})
	p, err := l.CreatePlaylist("Gym")
	require.NoError(t, err)
	require.NoError(t, l.AddSong(p.ID, domain.Song{Title: "Stronger", Artist: "Kanye West"}))

	snap := l.Export()

	restored := NewLibrary()
	restored.Import(snap)

	assert.Equal(t, l.Playlists(), restored.Playlists())
	assert.Len(t, restored.LikedSongs().Songs, 1)

	// The liked playlist survives the round trip as the distinguished one.
	assert.False(t, restored.LikeSong(domain.Song{Title: "Happy", Artist: "Pharrell Williams"}))
}

func TestLibrary_OnChangeFiresPerMutation(t *testing.T) {
	l := NewLibrary()

	var snaps []ports.LibrarySnapshot
	l.OnChange(func(s ports.LibrarySnapshot) {
		snaps = append(snaps, s)
	})

	l.LikeSong(domain.Song{Title: "a", Artist: "b"})
	l.LikeSong(domain.Song{Title: "a", Artist: "b"}) // no-op, no notification
	_, err := l.CreatePlaylist("Gym")
	require.NoError(t, err)

	require.Len(t, snaps, 2)
	assert.Len(t, snaps[1].Playlists, 2)
}

// Mirrors the persistence wiring in main, where each store's hook reads the
// other store to assemble a full snapshot. Hooks fire outside the store lock,
// so concurrent mutations on both stores must always finish.
func TestLibrary_CrossStoreHooksDoNotDeadlock(t *testing.T) {
	l := NewLibrary()
	h := NewSearchHistory(10)

	l.OnChange(func(s ports.LibrarySnapshot) {
		s.History = h.List()
	})
	h.OnChange(func(entries []domain.CatalogEntry) {
		_ = l.Export()
	})

	const iterations = 500
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			l.LikeSong(domain.Song{Title: fmt.Sprintf("liked %d", i), Artist: "a"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, err := l.CreatePlaylist(fmt.Sprintf("playlist %d", i))
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			h.Record(domain.CatalogEntry{Title: fmt.Sprintf("played %d", i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			h.Remove(fmt.Sprintf("played %d", i))
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent library and history mutations never finished")
	}
}
