package belief

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapDetectionToConcepts(t *testing.T) {
	tests := []struct {
		name                string
		detectedType        string
		lexicon             Lexicon
		expectedLabels      []string
		expectedConfidences []float64
	}{
		{
			name:                "no lexicon mirrors the detection",
			detectedType:        "chair",
			expectedLabels:      []string{"chair"},
			expectedConfidences: []float64{1.0},
		},
		{
			name:                "known category gets no fallback",
			detectedType:        "mug",
			lexicon:             NewLexiconSet("mug", "chair"),
			expectedLabels:      []string{"mug"},
			expectedConfidences: []float64{1.0},
		},
		{
			name:                "unknown category adds low-confidence fallback",
			detectedType:        "widget",
			lexicon:             NewLexiconSet("mug", "chair"),
			expectedLabels:      []string{"widget", "unknown"},
			expectedConfidences: []float64{1.0, 0.1},
		},
		{
			name:         "empty detection maps to nothing",
			detectedType: "",
			lexicon:      NewLexiconSet("mug"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, confidences := MapDetectionToConcepts(tt.detectedType, tt.lexicon)
			assert.Equal(t, tt.expectedLabels, labels)
			assert.Equal(t, tt.expectedConfidences, confidences)
		})
	}
}
