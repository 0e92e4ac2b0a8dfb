// Package parse extracts song candidates from the analysis service's
// free-text reply. The reply has no documented grammar; the heuristics here
// accept the line shapes the service actually produces.
package parse

import (
	"strings"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
)

// Parser is the default line-oriented reply parser. Recognized shapes:
//
//	<title> - <artist>
//	<number>. <title> - <artist>
//	<number>. <title> by <artist>
//
// Markdown bullets, bold markers and quotes around the title are tolerated.
// Prose before the first recognized line becomes the mood description.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(reply string) domain.MoodAnalysis {
	lines := strings.Split(reply, "\n")

	var descLines []string
	var candidates []domain.Candidate

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(candidates) == 0 {
				descLines = append(descLines, "")
			}
			continue
		}

		if c, ok := parseLine(line); ok {
			candidates = append(candidates, c)
			continue
		}

		// Trailing prose after the list is dropped, not appended to the
		// description.
		if len(candidates) == 0 {
			descLines = append(descLines, line)
		}
	}

	return domain.MoodAnalysis{
		MoodDescription: strings.TrimSpace(strings.Join(descLines, "\n")),
		Candidates:      candidates,
	}
}

var dashSeparators = []string{" - ", " – ", " — "}

func parseLine(line string) (domain.Candidate, bool) {
	s, listMarker := stripListMarker(line)
	s = strings.Trim(s, "*_")
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Candidate{}, false
	}

	for _, sep := range dashSeparators {
		if idx := strings.Index(s, sep); idx > 0 {
			return splitCandidate(s[:idx], s[idx+len(sep):])
		}
	}

	// The "by" shape only counts inside an enumerated list, otherwise plain
	// prose like "music helps by lifting your mood" would match.
	if listMarker {
		if idx := strings.Index(s, " by "); idx > 0 {
			return splitCandidate(s[:idx], s[idx+4:])
		}
	}

	return domain.Candidate{}, false
}

// stripListMarker removes a leading bullet or "N." / "N)" enumeration and
// reports whether one was present.
func stripListMarker(line string) (string, bool) {
	s := strings.TrimSpace(line)

	if trimmed := strings.TrimLeft(s, "-*•"); trimmed != s {
		return strings.TrimSpace(trimmed), true
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return strings.TrimSpace(s[i+1:]), true
	}

	return s, false
}

func splitCandidate(title, artist string) (domain.Candidate, bool) {
	title = trimQuotes(strings.Trim(strings.TrimSpace(title), "*_"))
	artist = trimQuotes(strings.Trim(strings.TrimSpace(artist), "*_"))
	if title == "" || artist == "" {
		return domain.Candidate{}, false
	}
	return domain.Candidate{Title: title, Artist: artist}, true
}

func trimQuotes(s string) string {
	s = strings.Trim(s, `"'`)
	s = strings.TrimPrefix(s, "“")
	s = strings.TrimSuffix(s, "”")
	s = strings.TrimPrefix(s, "„")
	return strings.TrimSpace(s)
}
