// Package snapshot assembles one immutable record of everything the analyzer
// knows about a repository: host metadata, the bounded file tree, derived
// stats and technologies, and a small set of sample files.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	giturls "github.com/whilp/git-urls"

	"gitinsight/internal/githost"
	"gitinsight/internal/scan"
)

// Host is the repository host surface the builder depends on.
type Host interface {
	GetRepo(ctx context.Context, owner, repo string) (*githost.RepoMeta, error)
	GetLanguages(ctx context.Context, owner, repo string) ([]string, error)
	scan.Lister
	scan.ContentFetcher
}

// RepositorySnapshot is the aggregate root handed to the narrative analyzer.
// Constructed atomically by Build; downstream consumers only read it.
type RepositorySnapshot struct {
	Owner        string            `json:"owner"`
	Repo         string            `json:"repo"`
	Meta         githost.RepoMeta  `json:"meta"`
	Stats        scan.ProjectStats `json:"stats"`
	Languages    []string          `json:"languages"`
	Technologies []string          `json:"technologies"`
	FileTree     []*scan.Node      `json:"fileTree"`
	Samples      []scan.SampleFile `json:"samples"`
}

// Builder orchestrates the host calls behind one snapshot.
type Builder struct {
	host Host
}

func NewBuilder(host Host) *Builder {
	return &Builder{host: host}
}

// Build resolves repoURL into owner/repo and assembles the snapshot.
// The metadata fetch is required; languages, subtrees and samples degrade
// silently per the best-effort policy.
func (b *Builder) Build(ctx context.Context, repoURL string) (*RepositorySnapshot, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	meta, err := b.host.GetRepo(ctx, owner, repo)
	if err != nil {
		var se *githost.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, owner, repo)
		}
		return nil, fmt.Errorf("%w: fetching %s/%s metadata: %v", ErrUpstream, owner, repo, err)
	}

	languages, err := b.host.GetLanguages(ctx, owner, repo)
	if err != nil {
		// Best effort: a missing language breakdown never aborts the build.
		log.Printf("snapshot: languages fetch for %s/%s failed: %v", owner, repo, err)
		languages = nil
	}

	walker := scan.NewWalker(b.host, owner, repo)
	tree := walker.Walk(ctx, "", 0)
	if failed := walker.Failures(); len(failed) > 0 {
		log.Printf("snapshot: %s/%s built with %d unreadable subtrees", owner, repo, len(failed))
	}

	return &RepositorySnapshot{
		Owner:        owner,
		Repo:         repo,
		Meta:         *meta,
		Stats:        scan.ComputeStats(tree),
		Languages:    languages,
		Technologies: scan.ComputeTechnologies(tree, languages),
		FileTree:     tree,
		Samples:      scan.CollectSamples(ctx, b.host, owner, repo, tree),
	}, nil
}

// ParseRepoURL extracts (owner, repo) from a host-qualified repository URL,
// stripping a trailing ".git". Anything not matching that shape is rejected
// before any network call.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return "", "", fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	u, err := giturls.Parse(repoURL)
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[0] == "" || segs[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}
	owner = segs[0]
	repo = strings.TrimSuffix(segs[1], ".git")
	if repo == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}
	return owner, repo, nil
}
