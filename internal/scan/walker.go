// Package scan walks a remote repository tree through the host's contents API
// and derives structure statistics, technology tags, and sample files from it.
package scan

import (
	"context"
	"log"
	"strings"
	"sync"

	"gitinsight/internal/githost"
)

// NodeKind discriminates file leaves from directory branches.
type NodeKind string

const (
	KindFile NodeKind = "file"
	KindDir  NodeKind = "directory"
)

// Node is one entry of the walked tree. Children is fully resolved before a
// node is returned; no lazy nodes escape the walker.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Kind     NodeKind `json:"type"`
	Size     int64    `json:"size,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// maxDepth bounds recursion: the root listing is depth 0, so at most four
// listing calls deep along any path.
const maxDepth = 3

// Lister is the remote directory-listing primitive the walker depends on.
type Lister interface {
	ListContents(ctx context.Context, owner, repo, path string) ([]githost.ContentEntry, error)
}

// Walker fetches a bounded tree for one repository. Fetch failures silently
// resolve the affected subtree to an empty child sequence; the failed paths
// stay observable through Failures.
type Walker struct {
	lister Lister
	owner  string
	repo   string

	mu       sync.Mutex
	failures []string
}

func NewWalker(lister Lister, owner, repo string) *Walker {
	return &Walker{lister: lister, owner: owner, repo: repo}
}

// Walk lists path and descends into subdirectories up to the depth bound.
// depth starts at 0 for the root call.
func (w *Walker) Walk(ctx context.Context, path string, depth int) []*Node {
	if depth > maxDepth {
		return nil
	}
	entries, err := w.lister.ListContents(ctx, w.owner, w.repo, path)
	if err != nil {
		w.recordFailure(path, err)
		return nil
	}
	var nodes []*Node
	for _, e := range entries {
		switch e.Type {
		case "file":
			nodes = append(nodes, &Node{
				Name: e.Name,
				Path: e.Path,
				Kind: KindFile,
				Size: e.Size,
			})
		case "dir":
			if skipDir(e.Name) {
				continue
			}
			nodes = append(nodes, &Node{
				Name:     e.Name,
				Path:     e.Path,
				Kind:     KindDir,
				Children: w.Walk(ctx, e.Path, depth+1),
			})
		}
	}
	return nodes
}

// Failures returns the paths whose listing fetch failed, distinguishing
// "empty because absent" from "empty because the fetch failed".
func (w *Walker) Failures() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.failures))
	copy(out, w.failures)
	return out
}

func (w *Walker) recordFailure(path string, err error) {
	if path == "" {
		path = "."
	}
	log.Printf("scan: listing %s/%s %q failed: %v", w.owner, w.repo, path, err)
	w.mu.Lock()
	w.failures = append(w.failures, path)
	w.mu.Unlock()
}

// skipDir excludes hidden and dependency-cache directories from the tree.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
