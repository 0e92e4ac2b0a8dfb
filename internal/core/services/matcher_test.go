package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// fakeAnalyzer returns a canned analysis, optionally blocking until released
// so tests can interleave match calls.
type fakeAnalyzer struct {
	analysis domain.MoodAnalysis
	err      error

	blockOn string
	started chan struct{}
	release chan struct{}
}

func (f *fakeAnalyzer) AnalyzeText(ctx context.Context, text string) (domain.MoodAnalysis, error) {
	if f.blockOn != "" && text == f.blockOn {
		f.started <- struct{}{}
		<-f.release
	}
	return f.analysis, f.err
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, data []byte, mimeHint string) (domain.MoodAnalysis, error) {
	return f.analysis, f.err
}

// fakeCatalog resolves candidates from a fixed table, with optional per-title
// delays to simulate out-of-order completion.
type fakeCatalog struct {
	entries map[string]*domain.CatalogEntry
	errs    map[string]error
	delays  map[string]time.Duration
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]domain.CatalogEntry, error) {
	return nil, nil
}

func (f *fakeCatalog) Resolve(ctx context.Context, title, artist string) (*domain.CatalogEntry, error) {
	if d, ok := f.delays[title]; ok {
		time.Sleep(d)
	}
	if err, ok := f.errs[title]; ok {
		return nil, err
	}
	return f.entries[title], nil
}

type fakePlayer struct {
	played []string
	err    error
}

func (f *fakePlayer) Play(ctx context.Context, uri string) error {
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, uri)
	return nil
}

func entry(title, artist string) *domain.CatalogEntry {
	return &domain.CatalogEntry{
		Title:   title,
		Artist:  artist,
		PlayURI: "spotify:track:" + title,
	}
}

func TestMatcher_MatchText(t *testing.T) {
	happyAnalysis := domain.MoodAnalysis{
		MoodDescription: "You seem upbeat and ready to move!",
		Candidates: []domain.Candidate{
			{Title: "Happy", Artist: "Pharrell Williams"},
			{Title: "Good as Hell", Artist: "Lizzo"},
		},
	}

	tests := []struct {
		name        string
		analyzer    *fakeAnalyzer
		catalog     *fakeCatalog
		wantErr     bool
		wantDesc    string
		wantTitles  []string
		wantAnalErr bool
	}{
		{
			name:     "happy path keeps candidate order",
			analyzer: &fakeAnalyzer{analysis: happyAnalysis},
			catalog: &fakeCatalog{
				entries: map[string]*domain.CatalogEntry{
					"Happy":        entry("Happy", "Pharrell Williams"),
					"Good as Hell": entry("Good as Hell", "Lizzo"),
				},
			},
			wantDesc:   "You seem upbeat and ready to move!",
			wantTitles: []string{"Happy", "Good as Hell"},
		},
		{
			name:     "analyzer failure is pipeline fatal",
			analyzer: &fakeAnalyzer{err: errors.New("service unreachable")},
			catalog:  &fakeCatalog{},
			wantErr:  true,
		},
		{
			name: "unresolved and failing candidates are dropped silently",
			analyzer: &fakeAnalyzer{analysis: domain.MoodAnalysis{
				MoodDescription: "Chill.",
				Candidates: []domain.Candidate{
					{Title: "A", Artist: "X"},
					{Title: "B", Artist: "Y"},
					{Title: "C", Artist: "Z"},
				},
			}},
			catalog: &fakeCatalog{
				entries: map[string]*domain.CatalogEntry{
					"A": entry("A", "X"),
					"C": entry("C", "Z"),
				},
				errs: map[string]error{"B": errors.New("search failed")},
			},
			wantDesc:   "Chill.",
			wantTitles: []string{"A", "C"},
		},
		{
			name: "zero candidates is success with empty suggestions",
			analyzer: &fakeAnalyzer{analysis: domain.MoodAnalysis{
				MoodDescription: "That sounds like a heavy day.",
			}},
			catalog:    &fakeCatalog{},
			wantDesc:   "That sounds like a heavy day.",
			wantTitles: []string{},
		},
		{
			name: "all resolutions failing is still success",
			analyzer: &fakeAnalyzer{analysis: happyAnalysis},
			catalog: &fakeCatalog{
				errs: map[string]error{
					"Happy":        errors.New("down"),
					"Good as Hell": errors.New("down"),
				},
			},
			wantDesc:   "You seem upbeat and ready to move!",
			wantTitles: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMatcher(tc.analyzer, tc.catalog, &fakePlayer{})

			result, err := m.MatchText(context.Background(), "I feel energetic and happy")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				var analysisErr *domain.AnalysisError
				if !errors.As(err, &analysisErr) {
					t.Fatalf("expected AnalysisError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.MoodDescription != tc.wantDesc {
				t.Fatalf("mood description: want %q, got %q", tc.wantDesc, result.MoodDescription)
			}
			if len(result.Suggestions) != len(tc.wantTitles) {
				t.Fatalf("suggestions: want %d, got %d (%+v)", len(tc.wantTitles), len(result.Suggestions), result.Suggestions)
			}
			for i, title := range tc.wantTitles {
				if result.Suggestions[i].Title != title {
					t.Fatalf("suggestion %d: want %q, got %q", i, title, result.Suggestions[i].Title)
				}
			}
		})
	}
}

// TestMatcher_OrderPreservedUnderSlowResolution pins the ordering guarantee:
// the last candidate resolves first, yet the final sequence follows candidate
// order.
func TestMatcher_OrderPreservedUnderSlowResolution(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: domain.MoodAnalysis{
		MoodDescription: "Energetic.",
		Candidates: []domain.Candidate{
			{Title: "A", Artist: "X"},
			{Title: "B", Artist: "Y"},
			{Title: "C", Artist: "Z"},
		},
	}}
	catalog := &fakeCatalog{
		entries: map[string]*domain.CatalogEntry{
			"A": entry("A", "X"),
			"B": entry("B", "Y"),
			"C": entry("C", "Z"),
		},
		delays: map[string]time.Duration{
			"A": 40 * time.Millisecond,
			"B": 20 * time.Millisecond,
			// C completes immediately.
		},
	}

	m := NewMatcher(analyzer, catalog, &fakePlayer{})
	result, err := m.MatchText(context.Background(), "pump me up")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(result.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(result.Suggestions))
	}
	for i, title := range want {
		if result.Suggestions[i].Title != title {
			t.Fatalf("suggestion %d: want %q, got %q", i, title, result.Suggestions[i].Title)
		}
	}
}

// TestMatcher_StaleResultSuppressed pins the supersession guarantee: a match
// still in flight when a newer one starts finishes with ErrSuperseded.
func TestMatcher_StaleResultSuppressed(t *testing.T) {
	analyzer := &fakeAnalyzer{
		analysis: domain.MoodAnalysis{MoodDescription: "ok"},
		blockOn:  "first",
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	m := NewMatcher(analyzer, &fakeCatalog{}, &fakePlayer{})

	firstErr := make(chan error, 1)
	go func() {
		_, err := m.MatchText(context.Background(), "first")
		firstErr <- err
	}()

	<-analyzer.started

	result, err := m.MatchText(context.Background(), "second")
	if err != nil {
		t.Fatalf("second match failed: %v", err)
	}
	if result.MoodDescription != "ok" {
		t.Fatalf("second match result mismatch: %+v", result)
	}

	close(analyzer.release)

	select {
	case err := <-firstErr:
		if !errors.Is(err, domain.ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first match did not finish")
	}
}

func TestMatcher_Play(t *testing.T) {
	player := &fakePlayer{}
	m := NewMatcher(&fakeAnalyzer{}, &fakeCatalog{}, player)

	if err := m.Play(context.Background(), ""); !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput for empty uri, got %v", err)
	}

	if err := m.Play(context.Background(), "spotify:track:abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(player.played) != 1 || player.played[0] != "spotify:track:abc" {
		t.Fatalf("player did not receive the uri: %+v", player.played)
	}
}
