package study

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Feedback is the transient result of a typed-answer check.
type Feedback struct {
	Similarity    float64 `json:"similarity"`
	Band          string  `json:"band"`
	CorrectAnswer string  `json:"correct_answer"`
}

// Feedback bands for typed answers.
const (
	BandGood    = "good"    // similarity > 0.8
	BandPartial = "partial" // similarity > 0.5
	BandPoor    = "poor"
)

// Similarity scores how close input is to the expected answer. Both sides
// are lower-cased and trimmed, then compared by Levenshtein edit distance
// normalized by the longer string's length. Two empty strings score 1.0.
func Similarity(input, answer string) float64 {
	a := normalize(input)
	b := normalize(answer)

	longer := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longer {
		longer = n
	}
	if longer == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return float64(longer-dist) / float64(longer)
}

// Band maps a similarity score to its feedback band.
func Band(similarity float64) string {
	switch {
	case similarity > 0.8:
		return BandGood
	case similarity > 0.5:
		return BandPartial
	default:
		return BandPoor
	}
}

// Grade combines Similarity and Band for a typed answer.
func Grade(input, answer string) Feedback {
	sim := Similarity(input, answer)
	return Feedback{
		Similarity:    sim,
		Band:          Band(sim),
		CorrectAnswer: answer,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
