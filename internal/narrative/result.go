// Package narrative turns a repository snapshot into a structured
// natural-language report through the generative text service, degrading to a
// fixed fallback whenever the model's output cannot be parsed.
package narrative

// AnalysisResult is the fixed-shape report. Always fully populated: missing
// fields are filled with explicit fallback values, never left absent.
type AnalysisResult struct {
	Summary         string       `json:"summary"`
	Features        []string     `json:"features"`
	Architecture    Architecture `json:"architecture"`
	Insights        Insights     `json:"insights"`
	Recommendations []string     `json:"recommendations"`
}

// Architecture names the detected pattern and its main building blocks.
type Architecture struct {
	Pattern    string   `json:"pattern"`
	Components []string `json:"components"`
}

// Insights carries the qualitative findings. Complexity is clamped to [1,10].
type Insights struct {
	CodeQuality string `json:"codeQuality"`
	Complexity  int    `json:"complexity"`
	Performance string `json:"performance"`
}

const (
	defaultSummary     = "Analysis could not be fully generated for this repository."
	defaultPattern     = "Unknown"
	defaultCodeQuality = "Not enough information to assess code quality."
	defaultPerformance = "Not enough information to assess performance."
	defaultComplexity  = 5
)

// fallbackResult is returned whenever the model response has no parseable
// JSON object. Deliberate degrade-gracefully contract, not an error path.
func fallbackResult() *AnalysisResult {
	return &AnalysisResult{
		Summary: defaultSummary,
		Features: []string{
			"Automatic feature detection was unavailable for this repository.",
		},
		Architecture: Architecture{
			Pattern:    defaultPattern,
			Components: []string{},
		},
		Insights: Insights{
			CodeQuality: defaultCodeQuality,
			Complexity:  defaultComplexity,
			Performance: defaultPerformance,
		},
		Recommendations: []string{
			"Re-run the analysis; the generative service returned an unparseable response.",
		},
	}
}
