package snapshot

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitinsight/internal/githost"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		url         string
		owner, repo string
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets", "acme", "widgets"},
		{"https://github.com/acme/widgets/tree/main/src", "acme", "widgets"},
		{"git@github.com:acme/widgets.git", "acme", "widgets"},
	}
	for _, c := range cases {
		owner, repo, err := ParseRepoURL(c.url)
		require.NoError(t, err, c.url)
		assert.Equal(t, c.owner, owner, c.url)
		assert.Equal(t, c.repo, repo, c.url)
	}
}

func TestParseRepoURLRejectsBadShapes(t *testing.T) {
	for _, url := range []string{
		"",
		"   ",
		"not a url",
		"https://github.com/acme",
		"https://github.com/",
	} {
		_, _, err := ParseRepoURL(url)
		assert.ErrorIs(t, err, ErrInvalidURL, "url=%q", url)
	}
}

// fakeHost is an in-memory Host; it counts every remote call.
type fakeHost struct {
	meta      *githost.RepoMeta
	metaErr   error
	languages []string
	langErr   error
	listings  map[string][]githost.ContentEntry
	contents  map[string]string
	calls     int
}

func (f *fakeHost) GetRepo(context.Context, string, string) (*githost.RepoMeta, error) {
	f.calls++
	return f.meta, f.metaErr
}

func (f *fakeHost) GetLanguages(context.Context, string, string) ([]string, error) {
	f.calls++
	return f.languages, f.langErr
}

func (f *fakeHost) ListContents(_ context.Context, _, _, path string) ([]githost.ContentEntry, error) {
	f.calls++
	return f.listings[path], nil
}

func (f *fakeHost) GetFileContent(_ context.Context, _, _, path string) (string, error) {
	f.calls++
	if c, ok := f.contents[path]; ok {
		return c, nil
	}
	return "", errors.New("not found")
}

func TestBuildRejectsInvalidURLWithoutNetworkCalls(t *testing.T) {
	host := &fakeHost{}
	b := NewBuilder(host)
	_, err := b.Build(context.Background(), "definitely-not-a-repo")
	require.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, host.calls, "no network call may precede URL validation")
}

func TestBuildNotFound(t *testing.T) {
	host := &fakeHost{metaErr: &githost.StatusError{StatusCode: http.StatusNotFound, URL: "x"}}
	b := NewBuilder(host)
	_, err := b.Build(context.Background(), "https://github.com/acme/widgets.git")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildUpstreamError(t *testing.T) {
	host := &fakeHost{metaErr: &githost.StatusError{StatusCode: http.StatusInternalServerError, URL: "x"}}
	b := NewBuilder(host)
	_, err := b.Build(context.Background(), "https://github.com/acme/widgets.git")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestBuildAssemblesSnapshot(t *testing.T) {
	host := &fakeHost{
		meta:      &githost.RepoMeta{Name: "widgets", Description: "widget factory", Stars: 42, Language: "TypeScript"},
		languages: []string{"TypeScript", "CSS"},
		listings: map[string][]githost.ContentEntry{
			"": {
				{Name: "tailwind.config.js", Path: "tailwind.config.js", Type: "file", Size: 40},
				{Name: "src", Path: "src", Type: "dir"},
				{Name: "pages", Path: "pages", Type: "dir"},
			},
			"src": {
				{Name: "components", Path: "src/components", Type: "dir"},
			},
			"src/components": {
				{Name: "Button.tsx", Path: "src/components/Button.tsx", Type: "file", Size: 200},
			},
			"pages": {
				{Name: "index.tsx", Path: "pages/index.tsx", Type: "file", Size: 80},
			},
		},
		contents: map[string]string{},
	}
	b := NewBuilder(host)
	snap, err := b.Build(context.Background(), "https://github.com/acme/widgets.git")
	require.NoError(t, err)

	assert.Equal(t, "acme", snap.Owner)
	assert.Equal(t, "widgets", snap.Repo)
	assert.Equal(t, 3, snap.Stats.TotalFiles)
	assert.Equal(t, 1, snap.Stats.Components)
	assert.Equal(t, 1, snap.Stats.Pages)
	assert.Equal(t, []string{"TypeScript", "CSS"}, snap.Languages)
	assert.Contains(t, snap.Technologies, "Tailwind CSS")
	assert.Equal(t, "TypeScript", snap.Technologies[0], "declared languages seed the set first")
	assert.Empty(t, snap.Samples)
}

func TestBuildLanguagesFailureIsBestEffort(t *testing.T) {
	host := &fakeHost{
		meta:    &githost.RepoMeta{Name: "widgets"},
		langErr: errors.New("rate limited"),
		listings: map[string][]githost.ContentEntry{
			"": {{Name: "main.go", Path: "main.go", Type: "file", Size: 1}},
		},
	}
	b := NewBuilder(host)
	snap, err := b.Build(context.Background(), "https://github.com/acme/widgets")
	require.NoError(t, err)
	assert.Empty(t, snap.Languages)
	assert.Equal(t, 1, snap.Stats.TotalFiles)
}
