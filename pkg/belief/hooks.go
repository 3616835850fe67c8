package belief

import "fmt"

// Default thresholds and action names for the decision hierarchy.
const (
	DefaultDivergenceThreshold = 0.3
	DefaultConfidenceThreshold = 0.5

	DefaultCorrectionAction     = "CorrectHuman"
	DefaultLowConfidenceAction  = "AppendObservation"
	DefaultL2DAction            = "LookToDisambiguate"
	DefaultHighDivergenceAction = "AskHuman"
)

// DecisionConfig controls the routing of planner decisions based on belief
// metrics. Unset thresholds derive from DivergenceThreshold: correction at
// 1.5x, L2D at 0.5x. Unset action names fall back to the defaults above.
type DecisionConfig struct {
	Enabled              *bool    `yaml:"cbwm_enabled,omitempty"`
	DivergenceMetricType string   `yaml:"divergence_metric_type,omitempty"`
	DivergenceThreshold  *float64 `yaml:"divergence_threshold,omitempty"`
	CorrectionThreshold  *float64 `yaml:"correction_divergence_threshold,omitempty"`
	ConfidenceThreshold  *float64 `yaml:"concept_confidence_threshold,omitempty"`
	L2DThreshold         *float64 `yaml:"l2d_divergence_threshold,omitempty"`
	L2DEnabled           bool     `yaml:"l2d_action_enabled,omitempty"`
	CorrectionAction     string   `yaml:"correction_action,omitempty"`
	LowConfidenceAction  string   `yaml:"low_confidence_action,omitempty"`
	L2DAction            string   `yaml:"l2d_action,omitempty"`
	HighDivergenceAction string   `yaml:"high_divergence_action,omitempty"`
}

func (c *DecisionConfig) enabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c *DecisionConfig) divergenceThreshold() float64 {
	if c.DivergenceThreshold != nil {
		return *c.DivergenceThreshold
	}
	return DefaultDivergenceThreshold
}

func (c *DecisionConfig) correctionThreshold() float64 {
	if c.CorrectionThreshold != nil {
		return *c.CorrectionThreshold
	}
	return c.divergenceThreshold() * 1.5
}

func (c *DecisionConfig) confidenceThreshold() float64 {
	if c.ConfidenceThreshold != nil {
		return *c.ConfidenceThreshold
	}
	return DefaultConfidenceThreshold
}

func (c *DecisionConfig) l2dThreshold() float64 {
	if c.L2DThreshold != nil {
		return *c.L2DThreshold
	}
	return c.divergenceThreshold() * 0.5
}

func (c *DecisionConfig) metricType() string {
	if c.DivergenceMetricType != "" {
		return c.DivergenceMetricType
	}
	return ScalarDivergenceKey
}

func orDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

// ChooseAction returns the tool name and a short reason when a belief hook
// should fire, or an empty action when the planner should proceed as-is.
//
// The decision hierarchy is:
//  1. If divergence is above the correction threshold, prefer correction.
//  2. If average concept confidence is below the configured threshold, add
//     more observations.
//  3. If L2D is enabled and divergence is above its threshold, disambiguate.
//  4. If divergence is above the warning threshold, ask the human for help.
func ChooseAction(cfg *DecisionConfig, metrics Metrics) (string, string) {
	if cfg == nil {
		return "", ""
	}
	if !cfg.enabled() {
		return "", "CBWM hooks disabled."
	}

	metricType := cfg.metricType()
	divergence := metrics.Divergence(metricType)

	if divergence >= cfg.correctionThreshold() {
		reason := fmt.Sprintf(
			"Belief divergence (%s) %.2f exceeds correction threshold %.2f.",
			metricType, divergence, cfg.correctionThreshold())
		return orDefault(cfg.CorrectionAction, DefaultCorrectionAction), reason
	}

	if metrics.AvgConceptConfidence < cfg.confidenceThreshold() {
		reason := fmt.Sprintf(
			"Average concept confidence %.2f is below threshold %.2f.",
			metrics.AvgConceptConfidence, cfg.confidenceThreshold())
		return orDefault(cfg.LowConfidenceAction, DefaultLowConfidenceAction), reason
	}

	if cfg.L2DEnabled && divergence >= cfg.l2dThreshold() {
		reason := fmt.Sprintf(
			"Divergence (%s) %.2f exceeds L2D threshold %.2f.",
			metricType, divergence, cfg.l2dThreshold())
		return orDefault(cfg.L2DAction, DefaultL2DAction), reason
	}

	if divergence >= cfg.divergenceThreshold() {
		reason := fmt.Sprintf(
			"Belief divergence (%s) %.2f exceeds threshold %.2f.",
			metricType, divergence, cfg.divergenceThreshold())
		return orDefault(cfg.HighDivergenceAction, DefaultHighDivergenceAction), reason
	}

	return "", metrics.Note
}
