package narrative

import (
	"fmt"
	"strings"

	"gitinsight/internal/snapshot"
)

// sampleContentCap bounds how much of each sample file goes into the prompt.
const sampleContentCap = 1000

// buildPrompt serializes the snapshot into a single natural-language
// instruction requesting a strict JSON object of the AnalysisResult shape.
func buildPrompt(snap *snapshot.RepositorySnapshot) string {
	var b strings.Builder

	b.WriteString("You are a senior software architect reviewing a code repository.\n")
	b.WriteString("Analyze the repository described below and respond with ONLY a JSON object, no prose, matching exactly this shape:\n")
	b.WriteString(`{
  "summary": "string",
  "features": ["string"],
  "architecture": {"pattern": "string", "components": ["string"]},
  "insights": {"codeQuality": "string", "complexity": 1, "performance": "string"},
  "recommendations": ["string"]
}`)
	b.WriteString("\n\"complexity\" is an integer from 1 to 10.\n\n")

	fmt.Fprintf(&b, "Repository: %s\n", snap.Meta.Name)
	if snap.Meta.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", snap.Meta.Description)
	}
	fmt.Fprintf(&b, "Stars: %d, Watchers: %d, Forks: %d\n", snap.Meta.Stars, snap.Meta.Watchers, snap.Meta.Forks)
	if snap.Meta.Language != "" {
		fmt.Fprintf(&b, "Primary language: %s\n", snap.Meta.Language)
	}
	fmt.Fprintf(&b, "Created: %s, Updated: %s\n",
		snap.Meta.CreatedAt.Format("2006-01-02"), snap.Meta.UpdatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Files: %d total, %d components, %d pages\n",
		snap.Stats.TotalFiles, snap.Stats.Components, snap.Stats.Pages)
	if len(snap.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(snap.Languages, ", "))
	}
	if len(snap.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(snap.Technologies, ", "))
	}

	for _, s := range snap.Samples {
		content := s.Content
		if len(content) > sampleContentCap {
			content = content[:sampleContentCap]
		}
		fmt.Fprintf(&b, "\n--- %s", s.Path)
		if s.Language != "" {
			fmt.Fprintf(&b, " (%s)", s.Language)
		}
		fmt.Fprintf(&b, " ---\n%s\n", content)
	}
	return b.String()
}
