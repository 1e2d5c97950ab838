// Package crest describes club crest images proxied from the crest CDN.
package crest

import "strings"

const DefaultContentType = "image/png"

// Image is a fetched crest and the content type the CDN reported for it.
type Image struct {
	ContentType string
	Body        []byte
}

// Allowed reports whether rawURL lives under prefix. An empty prefix allows nothing.
func Allowed(prefix, rawURL string) bool {
	prefix = strings.TrimSpace(prefix)
	return prefix != "" && strings.HasPrefix(strings.TrimSpace(rawURL), prefix)
}
