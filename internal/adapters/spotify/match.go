package spotify

import "strings"

// Catalog results rarely spell a track exactly the way the analysis service
// (or the user) does. Scoring normalizes both sides and combines title and
// artist similarity, weighting the title higher.

const (
	titleWeight  = 0.7
	artistWeight = 0.3
)

var suffixTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"edit":       {},
	"edition":    {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

func matchScore(reqTitle, reqArtist, candTitle, candArtist string) float64 {
	rt := normalize(reqTitle)
	ra := normalize(reqArtist)
	ct := normalize(candTitle)
	ca := normalize(candArtist)
	if rt == "" || ct == "" {
		return 0
	}

	titleSim := similarity(rt, ct)
	if ra == "" || ca == "" {
		return titleSim
	}

	artistSim := similarity(ra, ca)
	// A featured artist list still counts as a match for the primary artist.
	if strings.Contains(ca, ra) {
		artistSim = 1.0
	}
	return titleWeight*titleSim + artistWeight*artistSim
}

// normalize lowercases the input, strips common release suffixes like
// "(Remastered 2011)" or "- Radio Edit", and collapses separators.
func normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}
	s = stripSuffixes(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripSuffixes(input string) string {
	trimmed := strings.TrimSpace(input)
	for {
		next := trimBracketedSuffix(trimmed)
		next = trimDashSuffix(next)
		if next == trimmed {
			return trimmed
		}
		trimmed = strings.TrimSpace(next)
	}
}

func trimBracketedSuffix(input string) string {
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		if !strings.HasSuffix(input, pair[1]) {
			continue
		}
		idx := strings.LastIndex(input, pair[0])
		if idx == -1 || idx >= len(input)-1 {
			continue
		}
		if suffixHasToken(input[idx+1 : len(input)-1]) {
			return strings.TrimSpace(input[:idx])
		}
	}
	return input
}

func trimDashSuffix(input string) string {
	idx := strings.LastIndex(input, " - ")
	if idx == -1 {
		return input
	}
	if suffixHasToken(input[idx+3:]) {
		return strings.TrimSpace(input[:idx])
	}
	return input
}

func suffixHasToken(input string) bool {
	for _, token := range strings.Fields(strings.ToLower(input)) {
		token = strings.Trim(token, ".,")
		if _, ok := suffixTokens[token]; ok {
			return true
		}
	}
	return false
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		copy(prev, curr)
	}

	return prev[len(rb)]
}
