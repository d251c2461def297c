package snapshot

import "errors"

// Error taxonomy for the analysis flow. Structural/input failures abort the
// whole operation; best-effort degradations (empty subtree, skipped sample,
// fallback narrative) are deliberately not errors.
var (
	// ErrInvalidURL means the repository URL does not match the owner/repo
	// shape. Raised before any network call.
	ErrInvalidURL = errors.New("invalid repository URL")

	// ErrNotFound means the repository metadata fetch returned not-found.
	ErrNotFound = errors.New("repository not found")

	// ErrAuth means the generative service rejected the credential.
	ErrAuth = errors.New("credential rejected")

	// ErrRateLimited means the generative service throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream is the catch-all for unexpected remote status or shape.
	ErrUpstream = errors.New("upstream error")
)
