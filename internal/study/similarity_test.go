package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lribeiro/flashdeck/internal/study"
)

func TestSimilarity_IdenticalStrings(t *testing.T) {
	for _, s := range []string{"gato", "a", "hello world", "ação"} {
		assert.Equal(t, 1.0, study.Similarity(s, s), "identical %q", s)
	}
}

func TestSimilarity_KnownDistances(t *testing.T) {
	tests := []struct {
		input  string
		answer string
		want   float64
	}{
		{"gato", "gato", 1.0},
		{"gat", "gato", 0.75},  // one edit over length 4
		{"", "gato", 0.0},
		{"abcd", "wxyz", 0.0},
		{"perro", "pero", 0.8}, // one edit over length 5
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, study.Similarity(tt.input, tt.answer), 1e-9,
			"%q vs %q", tt.input, tt.answer)
	}
}

func TestSimilarity_Normalizes(t *testing.T) {
	assert.Equal(t, 1.0, study.Similarity("  GATO  ", "gato"))
	assert.Equal(t, 1.0, study.Similarity("Gato", "  gato\n"))
}

func TestSimilarity_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, study.Similarity("", ""))
	assert.Equal(t, 1.0, study.Similarity("   ", "\t"), "whitespace trims to empty")
}

func TestBand(t *testing.T) {
	assert.Equal(t, study.BandGood, study.Band(1.0))
	assert.Equal(t, study.BandGood, study.Band(0.81))
	assert.Equal(t, study.BandPartial, study.Band(0.8), "band boundaries are exclusive")
	assert.Equal(t, study.BandPartial, study.Band(0.51))
	assert.Equal(t, study.BandPoor, study.Band(0.5))
	assert.Equal(t, study.BandPoor, study.Band(0))
}

func TestGrade(t *testing.T) {
	fb := study.Grade("gat", "gato")
	assert.InDelta(t, 0.75, fb.Similarity, 1e-9)
	assert.Equal(t, study.BandPartial, fb.Band)
	assert.Equal(t, "gato", fb.CorrectAnswer)
}
