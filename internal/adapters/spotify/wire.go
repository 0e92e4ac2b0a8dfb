package spotify

import (
	"strings"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// Raw Spotify Web API shapes. Only the fields the adapter reads are declared.

type searchResponse struct {
	Tracks struct {
		Items []trackObject `json:"items"`
	} `json:"tracks"`
}

type trackObject struct {
	Name    string         `json:"name"`
	URI     string         `json:"uri"`
	Artists []artistObject `json:"artists"`
	Album   albumObject    `json:"album"`
}

type artistObject struct {
	Name string `json:"name"`
}

type albumObject struct {
	Name   string        `json:"name"`
	Images []imageObject `json:"images"`
}

type imageObject struct {
	URL string `json:"url"`
}

// mapTrack converts a raw track to a catalog entry. Entries missing a title
// or play URI are unusable and reported as malformed so the caller can skip
// them without failing the whole request.
func mapTrack(t trackObject) (domain.CatalogEntry, bool) {
	if t.Name == "" || t.URI == "" {
		return domain.CatalogEntry{}, false
	}

	artworkURL := ""
	if len(t.Album.Images) > 0 {
		artworkURL = t.Album.Images[0].URL
	}

	return domain.CatalogEntry{
		Title:      t.Name,
		Artist:     joinArtistNames(t),
		ArtworkURL: artworkURL,
		PlayURI:    t.URI,
	}, true
}

func joinArtistNames(t trackObject) string {
	if len(t.Artists) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, ", ")
}
