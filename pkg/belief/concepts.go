package belief

// Lexicon reports whether a semantic category is known to the metadata
// vocabulary of the simulator.
type Lexicon interface {
	Contains(category string) bool
}

// LexiconSet is a Lexicon backed by a fixed set of category names.
type LexiconSet map[string]struct{}

// NewLexiconSet builds a LexiconSet from the given categories.
func NewLexiconSet(categories ...string) LexiconSet {
	s := make(LexiconSet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

// Contains implements Lexicon.
func (s LexiconSet) Contains(category string) bool {
	_, ok := s[category]
	return ok
}

// MapDetectionToConcepts maps a detected semantic type to concept labels and
// confidences. The mapper mirrors the detected category into the concept
// space with a high-confidence label while providing a best-effort fallback
// for classes missing from the lexicon. An empty detection maps to nothing.
func MapDetectionToConcepts(detectedType string, lexicon Lexicon) ([]string, []float64) {
	if detectedType == "" {
		return nil, nil
	}

	labels := []string{detectedType}
	confidences := []float64{1.0}

	if lexicon != nil && !lexicon.Contains(detectedType) {
		labels = append(labels, "unknown")
		confidences = append(confidences, 0.1)
	}

	return labels, confidences
}
