package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// ErrUnresolvedPost reports that the input URL could not be resolved to a
// post: the URL is malformed, its page could not be fetched, or the page
// carries no author identity. Callers map it to a client error.
var ErrUnresolvedPost = errors.New("post URL could not be resolved")

// ThreadService is the core domain service. It owns the reconstruction
// pipeline: resolve the author DID from the post page, fetch the raw reply
// tree, reduce it to the linear self-reply chain, and memoize the result
// per input URL.
type ThreadService struct {
	resolver IdentityResolver
	fetcher  ThreadFetcher
	store    ThreadStore
	cdnBase  string
	logger   *slog.Logger

	// memory fronts the persistent store; entries never expire because a
	// reconstructed thread is treated as immutable once computed.
	memory *gocache.Cache
	group  singleflight.Group
}

// NewThreadService creates a ThreadService. cdnBase is the image CDN origin
// used when resolving embedded images.
func NewThreadService(resolver IdentityResolver, fetcher ThreadFetcher, store ThreadStore, cdnBase string, logger *slog.Logger) *ThreadService {
	return &ThreadService{
		resolver: resolver,
		fetcher:  fetcher,
		store:    store,
		cdnBase:  strings.TrimSuffix(cdnBase, "/"),
		logger:   logger,
		memory:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Unroll returns the reconstructed thread for the given post URL, computing
// it at most once. Concurrent requests for the same URL share a single
// upstream pipeline; requests for distinct URLs are independent.
func (s *ThreadService) Unroll(ctx context.Context, postURL string) (*ThreadResult, error) {
	rkey, err := postRKey(postURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvedPost, err)
	}

	if cached, ok := s.memory.Get(postURL); ok {
		return cached.(*ThreadResult), nil
	}

	v, err, _ := s.group.Do(postURL, func() (any, error) {
		return s.load(ctx, postURL, rkey)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ThreadResult), nil
}

func (s *ThreadService) load(ctx context.Context, postURL, rkey string) (*ThreadResult, error) {
	stored, err := s.store.GetThread(ctx, postURL)
	if err != nil {
		return nil, fmt.Errorf("read thread store: %w", err)
	}
	if stored != nil {
		s.logger.Debug("thread store hit", "postURL", postURL)
		s.memory.Set(postURL, stored, gocache.NoExpiration)
		return stored, nil
	}

	did, err := s.resolver.ResolvePostAuthor(ctx, postURL)
	if err != nil {
		s.logger.Warn("failed to resolve post author", "postURL", postURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnresolvedPost, err)
	}
	if did == "" {
		s.logger.Warn("post page carries no author identity", "postURL", postURL)
		return nil, ErrUnresolvedPost
	}

	node, err := s.fetcher.GetPostThread(ctx, did, rkey)
	if err != nil {
		return nil, fmt.Errorf("get post thread: %w", err)
	}
	if node == nil || node.Post == nil {
		return nil, fmt.Errorf("thread response has no root post (did=%s, rkey=%s)", did, rkey)
	}

	result := &ThreadResult{
		Message: MessageSuccess,
		Author:  node.Post.Author,
		Thread:  ReconstructThread(s.cdnBase, node),
	}

	if err := s.store.PutThread(ctx, postURL, result); err != nil {
		return nil, fmt.Errorf("write thread store: %w", err)
	}
	s.memory.Set(postURL, result, gocache.NoExpiration)

	s.logger.Info("thread reconstructed",
		"postURL", postURL,
		"did", did,
		"posts", len(result.Thread),
	)
	return result, nil
}

// postRKey validates the post URL and returns its trailing path segment,
// the post's record key.
func postRKey(postURL string) (string, error) {
	u, err := url.Parse(postURL)
	if err != nil {
		return "", fmt.Errorf("parse post URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	rkey := u.Path[strings.LastIndexByte(u.Path, '/')+1:]
	if rkey == "" {
		return "", fmt.Errorf("post URL has no record key segment")
	}
	return rkey, nil
}
