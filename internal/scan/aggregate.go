package scan

import "gitinsight/internal/classify"

// ProjectStats are the per-tree file counts. Recomputed fresh from a tree,
// never mutated incrementally.
type ProjectStats struct {
	TotalFiles int `json:"totalFiles"`
	Components int `json:"components"`
	Pages      int `json:"pages"`
}

// ComputeStats counts files and classified files across the whole tree in a
// single pre-order traversal.
func ComputeStats(nodes []*Node) ProjectStats {
	var stats ProjectStats
	visitFiles(nodes, func(n *Node) {
		stats.TotalFiles++
		if classify.IsComponent(n.Name, n.Path) {
			stats.Components++
		}
		if classify.IsPage(n.Name, n.Path) {
			stats.Pages++
		}
	})
	return stats
}

// ComputeTechnologies seeds the set with the declared languages (order
// preserved) and unions in the tags detected per file. Uniqueness is by value,
// order is insertion order.
func ComputeTechnologies(nodes []*Node, declared []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}
	for _, lang := range declared {
		add(lang)
	}
	visitFiles(nodes, func(n *Node) {
		for _, tag := range classify.Technologies(n.Name, n.Path) {
			add(tag)
		}
	})
	return out
}

// visitFiles applies fn to every file node in pre-order, visiting each node
// exactly once.
func visitFiles(nodes []*Node, fn func(*Node)) {
	for _, n := range nodes {
		if n.Kind == KindFile {
			fn(n)
			continue
		}
		visitFiles(n.Children, fn)
	}
}
