package bluesky

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// didMarkerID is the id of the element bsky.app renders into a post page for
// non-JS clients, carrying the author's DID as its text content.
const didMarkerID = "bsky_did"

// IdentityResolver recovers a post author's DID by scraping the post's
// public web page.
type IdentityResolver struct {
	userAgent  string
	httpClient *http.Client
}

// NewIdentityResolver creates a resolver. userAgent is sent with every page
// fetch; the DID marker is part of the server-rendered fallback markup, so a
// plain non-browser agent works fine, but the value is configurable.
func NewIdentityResolver(userAgent string) *IdentityResolver {
	return &IdentityResolver{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ResolvePostAuthor fetches the post page and returns the trimmed text of
// the DID marker element. A page without the marker yields an empty DID and
// a nil error: unknown identity is a recoverable state, not a fault. Fetch
// and parse failures are returned as errors.
func (r *IdentityResolver) ResolvePostAuthor(ctx context.Context, postURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch post page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch post page: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse post page: %w", err)
	}

	marker := findElementByID(doc, didMarkerID)
	if marker == nil {
		return "", nil
	}
	return strings.TrimSpace(textContent(marker)), nil
}

func findElementByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
