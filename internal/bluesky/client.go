package bluesky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skeetstorm/skeetstorm/internal/domain"
)

const defaultAppView = "https://public.api.bsky.app"

// threadDepth is the reply-tree depth requested from the AppView. The
// endpoint's default of 6 would truncate long storms, so we request the
// maximum the lexicon allows and expect a single call to return the whole
// tree.
const threadDepth = 1000

// Client is a minimal read-only BlueSky AppView client. It speaks only
// unauthenticated XRPC query endpoints.
type Client struct {
	appview    string
	httpClient *http.Client
}

// NewClient creates a new AppView client. If appview is empty, it defaults
// to https://public.api.bsky.app.
func NewClient(appview string) *Client {
	if appview == "" {
		appview = defaultAppView
	}
	return &Client{
		appview: appview,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetPostThread fetches the full reply tree beneath the post identified by
// the author DID and record key via app.bsky.feed.getPostThread. A single
// request is issued; no retries, no pagination.
func (c *Client) GetPostThread(ctx context.Context, did, rkey string) (*domain.ThreadNode, error) {
	atURI := fmt.Sprintf("at://%s/app.bsky.feed.post/%s", did, rkey)

	q := url.Values{}
	q.Set("uri", atURI)
	q.Set("depth", strconv.Itoa(threadDepth))
	endpoint := c.appview + "/xrpc/app.bsky.feed.getPostThread?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result getPostThreadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result.Thread, nil
}

type getPostThreadResponse struct {
	Thread domain.ThreadNode `json:"thread"`
}
