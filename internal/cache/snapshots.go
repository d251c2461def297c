// Package cache keeps recently built snapshots in memory so repeated analyses
// of the same repository skip the host walk. Nothing is persisted.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gitinsight/internal/snapshot"
)

// Snapshots is a bounded LRU of snapshots keyed by "owner/repo" with a TTL so
// stale trees age out.
type Snapshots struct {
	lru *expirable.LRU[string, *snapshot.RepositorySnapshot]
}

func NewSnapshots(entries int, ttl time.Duration) *Snapshots {
	if entries <= 0 {
		entries = 128
	}
	return &Snapshots{
		lru: expirable.NewLRU[string, *snapshot.RepositorySnapshot](entries, nil, ttl),
	}
}

func (s *Snapshots) Get(owner, repo string) (*snapshot.RepositorySnapshot, bool) {
	if s == nil {
		return nil, false
	}
	return s.lru.Get(key(owner, repo))
}

func (s *Snapshots) Add(snap *snapshot.RepositorySnapshot) {
	if s == nil || snap == nil {
		return
	}
	s.lru.Add(key(snap.Owner, snap.Repo), snap)
}

func key(owner, repo string) string {
	return strings.ToLower(owner) + "/" + strings.ToLower(repo)
}
