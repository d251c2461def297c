// Package githost is a minimal read-only client for the repository host's
// REST API (GitHub v3 shape). Calls are anonymous; rate-limit rejections
// surface as StatusError like any other non-success status.
package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the repository host API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client against the given base URL (empty means the public
// GitHub API).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// StatusError reports a non-success HTTP status from the host.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("githost: %s returned status %d", e.URL, e.StatusCode)
}

// GetRepo fetches repository metadata.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*RepoMeta, error) {
	var meta RepoMeta
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListContents fetches the entries of a single directory. The host returns a
// JSON array for directories; a non-array payload (a lone file) yields an
// empty listing.
func (c *Client) ListContents(ctx context.Context, owner, repo, path string) ([]ContentEntry, error) {
	body, err := c.get(ctx, contentsPath(owner, repo, path))
	if err != nil {
		return nil, err
	}
	var entries []ContentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// GetLanguages returns the declared language names in the order the host
// reports them (byte-count descending on GitHub). Only the keys are consumed.
func (c *Client) GetLanguages(ctx context.Context, owner, repo string) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo))
	if err != nil {
		return nil, err
	}
	return objectKeysInOrder(body)
}

// GetFileContent fetches a single file and decodes it from the host's base64
// transport encoding.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	body, err := c.get(ctx, contentsPath(owner, repo, path))
	if err != nil {
		return "", err
	}
	var f struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return "", fmt.Errorf("githost: decode file payload: %w", err)
	}
	// GitHub inserts newlines into the base64 body.
	raw := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, f.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("githost: decode base64 content: %w", err)
	}
	return string(decoded), nil
}

func contentsPath(owner, repo, path string) string {
	p := fmt.Sprintf("/repos/%s/%s/contents", owner, repo)
	if path != "" {
		// Escape each segment but keep the separators.
		segs := strings.Split(path, "/")
		for i, s := range segs {
			segs[i] = url.PathEscape(s)
		}
		p += "/" + strings.Join(segs, "/")
	}
	return p
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u}
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("githost: decode %s: %w", path, err)
	}
	return nil
}

// objectKeysInOrder streams a JSON object and returns its top-level keys in
// document order, which encoding/json maps would not preserve.
func objectKeysInOrder(body []byte) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("githost: languages payload is not an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("githost: unexpected token in languages payload")
		}
		keys = append(keys, key)
		// Skip the value.
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
