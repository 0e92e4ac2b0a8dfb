package domain

// Song is a playable song in the library layer. Identity for dedup checks is
// the exact (Title, Artist) pair; ID is a surrogate key for list diffing.
type Song struct {
	ID     string
	Title  string
	Artist string
}

// SameIdentity reports whether two songs refer to the same recording.
// Matching is exact on title and artist.
func (s Song) SameIdentity(other Song) bool {
	return s.Title == other.Title && s.Artist == other.Artist
}

// CatalogEntry is the result of resolving a song against the music catalog.
// PlayURI is opaque and only ever handed back to the playback collaborator.
type CatalogEntry struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artwork_url"`
	PlayURI    string `json:"play_uri"`
}

// Song converts a catalog entry to a library song with the given surrogate id.
func (e CatalogEntry) Song(id string) Song {
	return Song{ID: id, Title: e.Title, Artist: e.Artist}
}
