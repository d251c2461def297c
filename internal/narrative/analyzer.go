package narrative

import (
	"context"
	"errors"
	"fmt"

	"gitinsight/internal/llm"
	"gitinsight/internal/snapshot"
)

// Analyzer submits snapshots to the generative text service and parses the
// freeform response into a fixed-shape result.
type Analyzer struct {
	factory llm.Factory
}

func NewAnalyzer(factory llm.Factory) *Analyzer {
	return &Analyzer{factory: factory}
}

// Analyze builds a client for the caller's credential, prompts the service,
// and returns a fully-populated result. Parse failures degrade to the fixed
// fallback; only transport/credential failures surface as errors.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.RepositorySnapshot, apiKey string) (*AnalysisResult, error) {
	client, err := a.factory(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", snapshot.ErrUpstream, err)
	}
	defer client.Close()

	text, err := client.GenerateText(ctx, buildPrompt(snap))
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrAuth):
			return nil, fmt.Errorf("%w: %v", snapshot.ErrAuth, err)
		case errors.Is(err, llm.ErrRateLimited):
			return nil, fmt.Errorf("%w: %v", snapshot.ErrRateLimited, err)
		default:
			return nil, fmt.Errorf("%w: generating analysis: %v", snapshot.ErrUpstream, err)
		}
	}
	return parseResult(text), nil
}
