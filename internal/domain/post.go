package domain

// NormalizedPost is the uniform shape each post of a reconstructed thread is
// reduced to. Embed and Facets are always non-nil so they serialize as empty
// arrays rather than null.
type NormalizedPost struct {
	// URI is the AT-URI of the post (e.g. at://did:plc:abc/app.bsky.feed.post/3l3qo2vuowo2b).
	URI string `json:"uri"`

	// Text is the post body, verbatim.
	Text string `json:"text"`

	// Embed is the ordered list of resolved image thumbnail URLs.
	Embed []string `json:"embed"`

	// Facets is the ordered list of hyperlink annotations over Text.
	Facets []FacetLink `json:"facets"`
}

// FacetLink is a byte-offset span into a post's text annotated with a
// destination URL.
type FacetLink struct {
	URI   string `json:"uri"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ThreadResult is the reconstructed thread for one post URL. Thread[0] is the
// root post itself; the rest is the author's linear self-reply chain. Author
// is the upstream profile object, passed through verbatim.
type ThreadResult struct {
	Message string           `json:"message"`
	Author  Author           `json:"author"`
	Thread  []NormalizedPost `json:"thread"`
}

// MessageSuccess marks a ThreadResult as complete; only such results are
// ever cached.
const MessageSuccess = "success"
