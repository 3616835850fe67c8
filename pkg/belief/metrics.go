package belief

// Metrics captures the world-model confidence signals emitted by a planner
// run. Zero divergence and full confidence are the neutral values used when
// a log record carries no belief information.
type Metrics struct {
	AvgConceptConfidence float64
	BeliefDivergence     float64
	DivergenceMetrics    map[string]float64
	Note                 string
}

// NewMetrics returns neutral metrics: full confidence, no divergence.
func NewMetrics() Metrics {
	return Metrics{AvgConceptConfidence: 1.0}
}

// Divergence returns the divergence score requested by the caller, falling
// back to the scalar BeliefDivergence when the named metric is unavailable.
// This keeps routing robust when only coarse divergence is recorded.
func (m Metrics) Divergence(metricType string) float64 {
	if metricType == ScalarDivergenceKey {
		return m.BeliefDivergence
	}
	if v, ok := m.DivergenceMetrics[metricType]; ok {
		return v
	}
	return m.BeliefDivergence
}

// ScalarDivergenceKey names the coarse divergence score that is always
// present on Metrics.
const ScalarDivergenceKey = "belief_divergence"
