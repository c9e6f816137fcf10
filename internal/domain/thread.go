package domain

import "encoding/json"

// ThreadNode is one node of the raw reply tree returned by
// app.bsky.feed.getPostThread. Nodes that are not thread views (not found,
// blocked) decode with a nil Post.
type ThreadNode struct {
	Post    *RawPost     `json:"post"`
	Replies []ThreadNode `json:"replies,omitempty"`
}

// RawPost is the upstream post view as returned by the AppView. It is
// read-only input to the reconstructor.
type RawPost struct {
	URI    string     `json:"uri"`
	CID    string     `json:"cid"`
	Author Author     `json:"author"`
	Record PostRecord `json:"record"`
}

// Author is the upstream author profile. Only the DID is inspected here;
// the full object is preserved byte-for-byte and passed through to clients.
type Author struct {
	DID string

	raw json.RawMessage
}

func (a *Author) UnmarshalJSON(data []byte) error {
	var probe struct {
		DID string `json:"did"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	a.DID = probe.DID
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a Author) MarshalJSON() ([]byte, error) {
	if len(a.raw) == 0 {
		return []byte("null"), nil
	}
	return a.raw, nil
}

// PostRecord is the parsed content of an app.bsky.feed.post record.
type PostRecord struct {
	Text   string    `json:"text"`
	Embed  *Embed    `json:"embed,omitempty"`
	Facets []Facet   `json:"facets,omitempty"`
	Reply  *ReplyRef `json:"reply,omitempty"`
}

// ReplyRef contains references to the parent and root of a reply chain.
type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

// StrongRef is a reference to a specific version of a record.
type StrongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Embed is a post's media attachment. Unrecognized embed variants decode
// without error; they are discriminated by the $type tag at normalization
// time and dropped if unknown.
type Embed struct {
	Type   string       `json:"$type"`
	Images []EmbedImage `json:"images,omitempty"`
}

// EmbedImage is a single image in an app.bsky.embed.images gallery.
type EmbedImage struct {
	Alt   string `json:"alt,omitempty"`
	Image Blob   `json:"image"`
}

// Blob is an AT Protocol blob reference for uploaded content.
type Blob struct {
	Type string `json:"$type"`
	Ref  struct {
		Link string `json:"$link"`
	} `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

// Facet is a byte-range annotation over a post's text.
type Facet struct {
	Index    ByteRange      `json:"index"`
	Features []FacetFeature `json:"features"`
}

// ByteRange is a facet's span into the post text, in bytes.
type ByteRange struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is one feature of a facet. Link features carry a destination
// URI; mention and tag features carry other fields that are ignored here.
type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
}
