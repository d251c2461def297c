package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestGetRepo(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("unexpected accept header %q", got)
		}
		w.Write([]byte(`{"name":"widgets","description":"d","stargazers_count":42,"watchers_count":7,"forks_count":3,"language":"TypeScript","created_at":"2024-01-02T03:04:05Z","updated_at":"2025-06-07T08:09:10Z"}`))
	}))

	meta, err := c.GetRepo(context.Background(), "acme", "widgets")
	if err != nil {
		t.Fatalf("GetRepo: %v", err)
	}
	if meta.Name != "widgets" || meta.Stars != 42 || meta.Language != "TypeScript" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.CreatedAt.IsZero() || meta.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not decoded: %+v", meta)
	}
}

func TestGetRepoStatusError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetRepo(context.Background(), "acme", "missing")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", se.StatusCode)
	}
}

func TestListContents(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/contents/src" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"name":"main.ts","path":"src/main.ts","type":"file","size":10},{"name":"lib","path":"src/lib","type":"dir","size":0}]`))
	}))

	entries, err := c.ListContents(context.Background(), "acme", "widgets", "src")
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(entries) != 2 || entries[0].Type != "file" || entries[1].Type != "dir" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestListContentsRootPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/contents" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[]`))
	}))
	if _, err := c.ListContents(context.Background(), "acme", "widgets", ""); err != nil {
		t.Fatalf("ListContents: %v", err)
	}
}

func TestListContentsNonArrayPayload(t *testing.T) {
	// A lone file returns an object; the lister treats it as an empty listing.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name":"README.md","content":"aGk=","encoding":"base64"}`))
	}))
	entries, err := c.ListContents(context.Background(), "acme", "widgets", "README.md")
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty listing, got %+v", entries)
	}
}

func TestGetLanguagesPreservesOrder(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"TypeScript": 90000, "CSS": 5000, "HTML": 100}`))
	}))

	langs, err := c.GetLanguages(context.Background(), "acme", "widgets")
	if err != nil {
		t.Fatalf("GetLanguages: %v", err)
	}
	want := []string{"TypeScript", "CSS", "HTML"}
	if !reflect.DeepEqual(langs, want) {
		t.Fatalf("languages = %v, want %v", langs, want)
	}
}

func TestGetFileContentDecodesBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"widgets"}`))
	// GitHub chunks the base64 body with newlines.
	chunked := encoded[:10] + "\n" + encoded[10:] + "\n"
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"content":  chunked,
			"encoding": "base64",
		})
	}))

	content, err := c.GetFileContent(context.Background(), "acme", "widgets", "package.json")
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	if content != `{"name":"widgets"}` {
		t.Fatalf("content = %q", content)
	}
}
