// Package server exposes the analysis flow over HTTP: a synchronous JSON
// endpoint, an async run + SSE watch pair, and a websocket variant.
package server

import (
	"context"
	"log"

	"gitinsight/internal/cache"
	"gitinsight/internal/narrative"
	"gitinsight/internal/snapshot"
)

// Report is the full response for one analysis: the snapshot plus the
// narrative result.
type Report struct {
	Snapshot *snapshot.RepositorySnapshot `json:"snapshot"`
	Analysis *narrative.AnalysisResult    `json:"analysis"`
}

// Service runs the snapshot build and narrative analysis behind the handlers.
type Service struct {
	builder   *snapshot.Builder
	analyzer  *narrative.Analyzer
	snapshots *cache.Snapshots
	runs      *runStore
}

func NewService(builder *snapshot.Builder, analyzer *narrative.Analyzer, snapshots *cache.Snapshots) *Service {
	return &Service{
		builder:   builder,
		analyzer:  analyzer,
		snapshots: snapshots,
		runs:      newRunStore(),
	}
}

// Analyze performs the whole flow for one request. onPhase, when non-nil, is
// invoked at each lifecycle transition (fetching, analyzing).
func (s *Service) Analyze(ctx context.Context, repoURL, apiKey string, onPhase func(phase string)) (*Report, error) {
	notify := func(phase string) {
		if onPhase != nil {
			onPhase(phase)
		}
	}

	notify(PhaseFetching)
	snap, err := s.buildSnapshot(ctx, repoURL)
	if err != nil {
		return nil, err
	}

	notify(PhaseAnalyzing)
	analysis, err := s.analyzer.Analyze(ctx, snap, apiKey)
	if err != nil {
		return nil, err
	}
	return &Report{Snapshot: snap, Analysis: analysis}, nil
}

// buildSnapshot consults the cache before walking the host.
func (s *Service) buildSnapshot(ctx context.Context, repoURL string) (*snapshot.RepositorySnapshot, error) {
	owner, repo, err := snapshot.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	if snap, ok := s.snapshots.Get(owner, repo); ok {
		log.Printf("server: snapshot cache hit for %s/%s", owner, repo)
		return snap, nil
	}
	snap, err := s.builder.Build(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	s.snapshots.Add(snap)
	return snap, nil
}
