package bluesky

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const postPage = `<!DOCTYPE html>
<html>
<head><title>Post</title></head>
<body>
<div id="root"></div>
<noscript>
  <p id="bsky_did"> did:plc:alice </p>
</noscript>
</body>
</html>`

func TestResolvePostAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("unexpected user agent %q", got)
		}
		fmt.Fprint(w, postPage)
	}))
	defer srv.Close()

	resolver := NewIdentityResolver("test-agent")
	did, err := resolver.ResolvePostAuthor(context.Background(), srv.URL+"/profile/alice/post/abc")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if did != "did:plc:alice" {
		t.Fatalf("expected trimmed DID, got %q", did)
	}
}

func TestResolvePostAuthorMissingMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no marker here</p></body></html>`)
	}))
	defer srv.Close()

	resolver := NewIdentityResolver("")
	did, err := resolver.ResolvePostAuthor(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("missing marker is not an error, got %v", err)
	}
	if did != "" {
		t.Fatalf("expected empty DID, got %q", did)
	}
}

func TestResolvePostAuthorFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	resolver := NewIdentityResolver("")
	if _, err := resolver.ResolvePostAuthor(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-2xx page fetch")
	}
}
