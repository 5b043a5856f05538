// Package search provides fuzzy title matching over the library.
package search

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// Confidence represents the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Result is a scored candidate title.
type Result struct {
	Title      string     `json:"title"`
	Score      float64    `json:"score"` // Jaro-Winkler similarity, 0.0-1.0
	Confidence Confidence `json:"-"`
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Match finds the best match for a query against candidate titles.
// Jaro-Winkler favors prefix matches, which suits media titles.
func Match(query string, candidates []string) Result {
	best := Result{}
	if len(candidates) == 0 {
		return best
	}

	normalized := CleanTitle(query)
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, CleanTitle(candidate)))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Title = ""
	}
	return best
}

// Rank scores every candidate against the query and returns those at or
// above minimum confidence, best first.
func Rank(query string, candidates []string, minimum Confidence) []Result {
	normalized := CleanTitle(query)

	var out []Result
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, CleanTitle(candidate)))
		c := confidenceFor(score)
		if c >= minimum && c > ConfidenceNone {
			out = append(out, Result{Title: candidate, Score: score, Confidence: c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
