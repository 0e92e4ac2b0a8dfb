package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

// Matcher runs the mood-to-music pipeline: analyze the mood input, resolve
// every candidate against the catalog concurrently, and assemble suggestions
// in the original candidate order.
//
// A Matcher represents one logical session. Each match bumps a generation
// counter; a call that is still in flight when a newer one starts finishes
// with ErrSuperseded and its result is never delivered.
type Matcher struct {
	analyzer ports.MoodAnalyzer
	catalog  ports.CatalogProvider
	player   ports.Player

	generation atomic.Uint64
}

// NewMatcher constructs a Matcher.
func NewMatcher(analyzer ports.MoodAnalyzer, catalog ports.CatalogProvider, player ports.Player) *Matcher {
	return &Matcher{
		analyzer: analyzer,
		catalog:  catalog,
		player:   player,
	}
}

// MatchText matches free-text mood input.
func (m *Matcher) MatchText(ctx context.Context, text string) (domain.MoodResult, error) {
	return m.match(ctx, func(ctx context.Context) (domain.MoodAnalysis, error) {
		return m.analyzer.AnalyzeText(ctx, text)
	})
}

// MatchImage matches a photo of the user's situation.
func (m *Matcher) MatchImage(ctx context.Context, data []byte, mimeHint string) (domain.MoodResult, error) {
	return m.match(ctx, func(ctx context.Context) (domain.MoodAnalysis, error) {
		return m.analyzer.AnalyzeImage(ctx, data, mimeHint)
	})
}

// Play forwards an opaque play URI to the playback collaborator.
func (m *Matcher) Play(ctx context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("service: %w", domain.ErrEmptyInput)
	}
	if err := m.player.Play(ctx, uri); err != nil {
		return fmt.Errorf("service: playback request failed: %w", err)
	}
	return nil
}

func (m *Matcher) match(ctx context.Context, analyze func(context.Context) (domain.MoodAnalysis, error)) (domain.MoodResult, error) {
	gen := m.generation.Add(1)

	analysis, err := analyze(ctx)
	if m.stale(gen) {
		return domain.MoodResult{}, domain.ErrSuperseded
	}
	if err != nil {
		return domain.MoodResult{}, fmt.Errorf("service: %w", &domain.AnalysisError{Cause: err})
	}

	// Zero candidates is "analysis succeeded, no songs found"; the mood
	// description still goes back to the caller.
	resolved := make([]*domain.CatalogEntry, len(analysis.Candidates))
	var failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range analysis.Candidates {
		g.Go(func() error {
			entry, err := m.catalog.Resolve(gctx, cand.Title, cand.Artist)
			if err != nil {
				// Per-candidate failures are absorbed; a song the catalog
				// cannot find is omitted, never a pipeline error.
				failures.Add(1)
				log.Warn().Str("title", cand.Title).Str("artist", cand.Artist).Err(err).Msg("candidate resolution failed")
				return nil
			}
			resolved[i] = entry
			return nil
		})
	}
	_ = g.Wait()

	if m.stale(gen) {
		return domain.MoodResult{}, domain.ErrSuperseded
	}

	if n := len(analysis.Candidates); n > 0 && failures.Load() == int64(n) {
		log.Warn().Int("candidates", n).Msg("every resolution failed; catalog may be unreachable")
	}

	suggestions := make([]domain.CatalogEntry, 0, len(resolved))
	for _, entry := range resolved {
		if entry != nil {
			suggestions = append(suggestions, *entry)
		}
	}

	return domain.MoodResult{
		MoodDescription: analysis.MoodDescription,
		Suggestions:     suggestions,
	}, nil
}

func (m *Matcher) stale(gen uint64) bool {
	return m.generation.Load() != gen
}
