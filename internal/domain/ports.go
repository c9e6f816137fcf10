package domain

import "context"

// ThreadStore defines persistence operations for reconstructed threads.
// Results are keyed by the raw request URL string; keys are not normalized,
// so URLs differing only in trailing slash or query order are distinct.
type ThreadStore interface {
	// GetThread retrieves a previously stored result. Returns (nil, nil)
	// when the key has never been stored.
	GetThread(ctx context.Context, postURL string) (*ThreadResult, error)

	// PutThread stores a result. Stores are write-once: a second put for the
	// same key is a no-op rather than an overwrite.
	PutThread(ctx context.Context, postURL string, result *ThreadResult) error
}

// ThreadFetcher retrieves the full raw reply tree beneath a post from the
// upstream feed service. One call, no retries, no pagination.
type ThreadFetcher interface {
	GetPostThread(ctx context.Context, did, rkey string) (*ThreadNode, error)
}

// IdentityResolver recovers the author DID embedded in a post's public web
// page. An empty DID with a nil error means the identity could not be
// located; that is a recoverable state, not a fault.
type IdentityResolver interface {
	ResolvePostAuthor(ctx context.Context, postURL string) (string, error)
}
