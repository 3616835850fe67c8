package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/avendra/cbwm-bench/pkg/belief"
)

// Series holds aligned per-step confidence and divergence values extracted
// from a sequence of log records.
type Series struct {
	Steps       []int
	Confidences []float64
	Divergences []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Steps) }

// Metric finds a numeric metric either at the top level of a record or
// under its "metrics" field.
func Metric(rec Record, key string) (float64, bool) {
	if v, ok := asFloat(rec[key]); ok {
		return v, true
	}
	if m, ok := rec["metrics"].(map[string]interface{}); ok {
		if v, ok := asFloat(m[key]); ok {
			return v, true
		}
	}
	return 0, false
}

// AvgConceptConfidence computes the mean confidence when a map of concept
// scores is present, falling back to the avg_concept_confidence metric.
func AvgConceptConfidence(rec Record) (float64, bool) {
	if concepts, ok := rec["concept_confidence"].(map[string]interface{}); ok && len(concepts) > 0 {
		var sum float64
		n := 0
		for _, v := range concepts {
			f, ok := asFloat(v)
			if !ok {
				continue
			}
			sum += f
			n++
		}
		if n > 0 {
			return sum / float64(n), true
		}
	}
	return Metric(rec, "avg_concept_confidence")
}

// PrepareSeries builds the step, confidence and divergence series for the
// given divergence key. Missing confidences default to 1.0 and missing
// divergences to 0.0; missing step fields fall back to the record index.
func PrepareSeries(records []Record, divergenceKey string) Series {
	s := Series{
		Steps:       make([]int, 0, len(records)),
		Confidences: make([]float64, 0, len(records)),
		Divergences: make([]float64, 0, len(records)),
	}

	for idx, rec := range records {
		s.Steps = append(s.Steps, recordStep(rec, idx))

		confidence := 1.0
		if v, ok := AvgConceptConfidence(rec); ok {
			confidence = v
		}
		s.Confidences = append(s.Confidences, confidence)

		divergence, ok := Metric(rec, divergenceKey)
		if !ok {
			// Fall back to aggregated divergence maps.
			divergence, _ = nestedDivergence(rec, divergenceKey)
		}
		s.Divergences = append(s.Divergences, divergence)
	}
	return s
}

func recordStep(rec Record, idx int) int {
	for _, key := range []string{"step", "timestep", "episode_step"} {
		if v, ok := asFloat(rec[key]); ok {
			return int(v)
		}
	}
	return idx
}

func nestedDivergence(rec Record, key string) (float64, bool) {
	for _, field := range []string{"divergence", "belief_divergence"} {
		if m, ok := rec[field].(map[string]interface{}); ok {
			if v, ok := asFloat(m[key]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// LatestMetrics converts the last record of a log into belief metrics so the
// decision hooks can run on it. An empty record list yields neutral metrics.
func LatestMetrics(records []Record) belief.Metrics {
	m := belief.NewMetrics()
	if len(records) == 0 {
		return m
	}
	rec := records[len(records)-1]

	if v, ok := AvgConceptConfidence(rec); ok {
		m.AvgConceptConfidence = v
	}
	if v, ok := Metric(rec, belief.ScalarDivergenceKey); ok {
		m.BeliefDivergence = v
	}
	for _, field := range []string{"divergence", "belief_divergence"} {
		nested, ok := rec[field].(map[string]interface{})
		if !ok {
			continue
		}
		for k, v := range nested {
			f, ok := asFloat(v)
			if !ok {
				continue
			}
			if m.DivergenceMetrics == nil {
				m.DivergenceMetrics = make(map[string]float64, len(nested))
			}
			m.DivergenceMetrics[k] = f
		}
	}
	return m
}

// Summary aggregates a series for human-readable reporting.
type Summary struct {
	DivergenceKey   string  `json:"divergence_key"`
	Points          int     `json:"points"`
	MeanConfidence  float64 `json:"mean_confidence"`
	MinConfidence   float64 `json:"min_confidence"`
	FinalConfidence float64 `json:"final_confidence"`
	MeanDivergence  float64 `json:"mean_divergence"`
	MaxDivergence   float64 `json:"max_divergence"`
	FinalDivergence float64 `json:"final_divergence"`
}

// Summarize reduces a series to its summary statistics.
func Summarize(s Series, divergenceKey string) Summary {
	sum := Summary{DivergenceKey: divergenceKey, Points: s.Len()}
	if s.Len() == 0 {
		return sum
	}

	sum.MinConfidence = s.Confidences[0]
	sum.MaxDivergence = s.Divergences[0]
	var confTotal, divTotal float64
	for i := range s.Steps {
		confTotal += s.Confidences[i]
		divTotal += s.Divergences[i]
		if s.Confidences[i] < sum.MinConfidence {
			sum.MinConfidence = s.Confidences[i]
		}
		if s.Divergences[i] > sum.MaxDivergence {
			sum.MaxDivergence = s.Divergences[i]
		}
	}
	sum.MeanConfidence = confTotal / float64(s.Len())
	sum.MeanDivergence = divTotal / float64(s.Len())
	sum.FinalConfidence = s.Confidences[s.Len()-1]
	sum.FinalDivergence = s.Divergences[s.Len()-1]
	return sum
}

// WriteCSV writes the series as step,confidence,divergence rows with a
// header line.
func WriteCSV(w io.Writer, s Series, divergenceKey string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "avg_concept_confidence", divergenceKey}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range s.Steps {
		row := []string{
			strconv.Itoa(s.Steps[i]),
			strconv.FormatFloat(s.Confidences[i], 'g', -1, 64),
			strconv.FormatFloat(s.Divergences[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
