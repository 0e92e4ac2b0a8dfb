package domain

// Candidate is a (title, artist) pair extracted from the analysis service's
// reply. It has not yet been verified to exist in the catalog.
type Candidate struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// MoodAnalysis is the structured output of the mood analysis stage.
type MoodAnalysis struct {
	MoodDescription string      `json:"mood_description"`
	Candidates      []Candidate `json:"candidates"`
}

// MoodResult is the final pipeline output: a mood description plus playable
// suggestions in ranking order. Suggestions may be empty on success.
type MoodResult struct {
	MoodDescription string         `json:"mood_description"`
	Suggestions     []CatalogEntry `json:"suggestions"`
}
