package scan

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// maxSamples bounds the number of sample files kept per snapshot.
const maxSamples = 5

// sampleMarkers is the allow-list of filenames worth sending to the narrative
// analyzer. Matching is a case-sensitive substring on the file name.
var sampleMarkers = []string{
	"package.json",
	"README.md",
	"tsconfig.json",
	"next.config.js",
	"vite.config.ts",
}

// SampleFile is a decoded source sample used as narrative context.
type SampleFile struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// ContentFetcher is the remote file-content primitive the sampler depends on.
type ContentFetcher interface {
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// CollectSamples walks the tree in pre-order and fetches the first
// maxSamples allow-listed files. Fetch failures skip the candidate silently,
// same best-effort policy as the walker.
func CollectSamples(ctx context.Context, fetcher ContentFetcher, owner, repo string, nodes []*Node) []SampleFile {
	samples := make([]SampleFile, 0, maxSamples)
	collectSamples(ctx, fetcher, owner, repo, nodes, &samples)
	return samples
}

func collectSamples(ctx context.Context, fetcher ContentFetcher, owner, repo string, nodes []*Node, samples *[]SampleFile) {
	for _, n := range nodes {
		if len(*samples) >= maxSamples {
			return
		}
		if n.Kind != KindFile {
			collectSamples(ctx, fetcher, owner, repo, n.Children, samples)
			continue
		}
		if !isSampleCandidate(n.Name) {
			continue
		}
		content, err := fetcher.GetFileContent(ctx, owner, repo, n.Path)
		if err != nil {
			log.Printf("scan: sample fetch %q skipped: %v", n.Path, err)
			continue
		}
		*samples = append(*samples, SampleFile{
			Path:     n.Path,
			Language: enry.GetLanguage(path.Base(n.Path), []byte(content)),
			Content:  content,
		})
	}
}

func isSampleCandidate(name string) bool {
	for _, m := range sampleMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
