package ports

import (
	"context"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// MoodAnalyzer turns raw mood input into a description and song candidates.
type MoodAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (domain.MoodAnalysis, error)
	AnalyzeImage(ctx context.Context, data []byte, mimeHint string) (domain.MoodAnalysis, error)
}

// ReplyParser extracts song candidates from the analysis service's free-text
// reply. Zero recognized candidates is success with an empty list, so a
// stricter structured-output contract can replace the default line heuristics
// without changing the analyzer's behavior.
type ReplyParser interface {
	Parse(reply string) domain.MoodAnalysis
}
