package narrative

import "encoding/json"

// parseResult extracts the first balanced JSON object from the model's raw
// text and coerces it field by field into a fully-populated AnalysisResult.
// Total parse failure yields the fixed fallback, never an error.
func parseResult(text string) *AnalysisResult {
	span, ok := extractJSONObject(text)
	if !ok {
		return fallbackResult()
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &doc); err != nil {
		return fallbackResult()
	}

	out := &AnalysisResult{
		Summary:         stringOr(doc["summary"], defaultSummary),
		Features:        stringSlice(doc["features"]),
		Recommendations: stringSlice(doc["recommendations"]),
	}

	var arch map[string]json.RawMessage
	if err := json.Unmarshal(doc["architecture"], &arch); err == nil {
		out.Architecture.Pattern = stringOr(arch["pattern"], defaultPattern)
		out.Architecture.Components = stringSlice(arch["components"])
	} else {
		out.Architecture.Pattern = defaultPattern
		out.Architecture.Components = []string{}
	}

	var ins map[string]json.RawMessage
	if err := json.Unmarshal(doc["insights"], &ins); err == nil {
		out.Insights.CodeQuality = stringOr(ins["codeQuality"], defaultCodeQuality)
		out.Insights.Performance = stringOr(ins["performance"], defaultPerformance)
		out.Insights.Complexity = clampComplexity(ins["complexity"])
	} else {
		out.Insights.CodeQuality = defaultCodeQuality
		out.Insights.Performance = defaultPerformance
		out.Insights.Complexity = defaultComplexity
	}
	return out
}

// extractJSONObject returns the first balanced {...} span in s. The service
// may prepend or append prose around the object, so brace depth is tracked
// with JSON string/escape awareness.
func extractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

func stringOr(raw json.RawMessage, fallback string) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return fallback
	}
	return s
}

// stringSlice coerces a JSON array into its string elements; anything that is
// not a sequence becomes an empty slice.
func stringSlice(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// clampComplexity coerces the parsed complexity into [1,10], defaulting to 5
// when absent or not a number.
func clampComplexity(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return defaultComplexity
	}
	n := int(f)
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
