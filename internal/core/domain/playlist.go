package domain

import "errors"

// LikedPlaylistName is the name of the distinguished liked-songs playlist.
const LikedPlaylistName = "Liked Songs"

type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

func NewPlaylist(id, name string) (*Playlist, error) {
	if id == "" || name == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Playlist{
		ID:    id,
		Name:  name,
		Songs: []Song{},
	}, nil
}

// AddSong appends a song unconditionally. General playlists allow duplicate
// entries when the user adds the same song twice on purpose.
func (p *Playlist) AddSong(s Song) {
	p.Songs = append(p.Songs, s)
}

// Contains reports whether the playlist already holds a song with the same
// identity.
func (p *Playlist) Contains(s Song) bool {
	for _, ex := range p.Songs {
		if ex.SameIdentity(s) {
			return true
		}
	}
	return false
}

// AddUnique appends the song only if no entry shares its identity. It returns
// true when the song was added, false on the idempotent no-op.
func (p *Playlist) AddUnique(s Song) bool {
	if p.Contains(s) {
		return false
	}
	p.Songs = append(p.Songs, s)
	return true
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the store-owned song sequence.
func (p Playlist) Clone() Playlist {
	songs := make([]Song, len(p.Songs))
	copy(songs, p.Songs)
	return Playlist{ID: p.ID, Name: p.Name, Songs: songs}
}
