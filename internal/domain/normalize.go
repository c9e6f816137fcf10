package domain

import (
	"fmt"
	"strings"
)

const (
	embedTypeImages = "app.bsky.embed.images"
	featureTypeLink = "app.bsky.richtext.facet#link"
)

// Normalize reduces one raw post to its uniform shape. cdnBase is the image
// CDN origin used to resolve embedded image blobs.
func Normalize(cdnBase string, post *RawPost) NormalizedPost {
	return NormalizedPost{
		URI:    post.URI,
		Text:   post.Record.Text,
		Embed:  ImageURLs(cdnBase, post.Author.DID, post.Record.Embed),
		Facets: LinkFacets(post.Record.Facets),
	}
}

// ImageURLs resolves an image-gallery embed into one thumbnail URL per image.
// Any other embed variant (or no embed at all) yields an empty list; upstream
// schema additions are dropped silently rather than treated as errors.
func ImageURLs(cdnBase, did string, embed *Embed) []string {
	urls := []string{}
	if embed == nil || embed.Type != embedTypeImages {
		return urls
	}
	for _, img := range embed.Images {
		urls = append(urls, fmt.Sprintf("%s/img/feed_thumbnail/plain/%s/%s@%s",
			cdnBase, did, img.Image.Ref.Link, mimeSubtype(img.Image.MimeType)))
	}
	return urls
}

// LinkFacets extracts hyperlink annotations from a post's facets. Only
// features tagged as links are kept; mention and tag features are skipped.
// A facet carrying several link features emits one entry per feature, all
// sharing the facet's byte range. Input order is preserved.
func LinkFacets(facets []Facet) []FacetLink {
	links := []FacetLink{}
	for _, facet := range facets {
		for _, feature := range facet.Features {
			if feature.Type != featureTypeLink {
				continue
			}
			links = append(links, FacetLink{
				URI:   feature.URI,
				Start: facet.Index.ByteStart,
				End:   facet.Index.ByteEnd,
			})
		}
	}
	return links
}

// mimeSubtype returns the part after the slash of a MIME type, which the
// image CDN expects as the file-extension suffix ("image/jpeg" -> "jpeg").
func mimeSubtype(mimeType string) string {
	if i := strings.IndexByte(mimeType, '/'); i >= 0 {
		return mimeType[i+1:]
	}
	return mimeType
}
