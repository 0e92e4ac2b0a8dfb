package spotify

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  Happy  ", "happy"},
		{"Creep (Remastered)", "creep"},
		{"Creep [Explicit]", "creep"},
		{"One More Time - Radio Edit", "one more time"},
		{"Don't Stop Me Now", "don t stop me now"},
		{"Pharrell Williams, Daft Punk", "pharrell williams daft punk"},
		{"Song (Not A Suffix Here)", "song not a suffix here"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := normalize(tc.input); got != tc.want {
				t.Fatalf("normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name       string
		reqTitle   string
		reqArtist  string
		candTitle  string
		candArtist string
		wantAbove  float64
		wantBelow  float64
	}{
		{
			name:      "exact match scores one",
			reqTitle:  "Happy", reqArtist: "Pharrell Williams",
			candTitle: "Happy", candArtist: "Pharrell Williams",
			wantAbove: 0.99,
		},
		{
			name:      "remaster suffix still matches",
			reqTitle:  "Creep", reqArtist: "Radiohead",
			candTitle: "Creep (Remastered 2008)", candArtist: "Radiohead",
			wantAbove: 0.9,
		},
		{
			name:      "featured artist list still matches primary artist",
			reqTitle:  "Get Lucky", reqArtist: "Daft Punk",
			candTitle: "Get Lucky", candArtist: "Daft Punk, Pharrell Williams",
			wantAbove: 0.99,
		},
		{
			name:      "unrelated track scores low",
			reqTitle:  "Happy", reqArtist: "Pharrell Williams",
			candTitle: "Bohemian Rhapsody", candArtist: "Queen",
			wantBelow: resolveMinScore,
		},
		{
			name:      "empty candidate title scores zero",
			reqTitle:  "Happy", reqArtist: "Pharrell Williams",
			candTitle: "", candArtist: "Queen",
			wantBelow: 0.01,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := matchScore(tc.reqTitle, tc.reqArtist, tc.candTitle, tc.candArtist)
			if tc.wantAbove > 0 && got < tc.wantAbove {
				t.Fatalf("score %v, want >= %v", got, tc.wantAbove)
			}
			if tc.wantBelow > 0 && got >= tc.wantBelow {
				t.Fatalf("score %v, want < %v", got, tc.wantBelow)
			}
		})
	}
}
