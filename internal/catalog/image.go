package catalog

import (
	"regexp"
	"strings"
)

// PlaceholderImage is served for products without any image.
const PlaceholderImage = "https://placehold.co/600x600?text=Product"

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// local asset roots served by the storefront itself
var localPrefixes = []string{"/src/", "/public/"}

const backendSegment = "/backend"

// ResolveImageURL turns a backend image path into a URL the browser can load.
func ResolveImageURL(apiBase, path string) string {
	if path == "" {
		return PlaceholderImage
	}

	for _, prefix := range localPrefixes {
		if strings.HasPrefix(path, prefix) {
			return path
		}
	}

	if absoluteURL.MatchString(path) || strings.HasPrefix(path, "data:") {
		return path
	}

	base := strings.TrimSuffix(apiBase, "/")
	normalized := path
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}

	// /backend/backend when the base already points at the backend mount
	if strings.HasSuffix(base, backendSegment) && strings.HasPrefix(normalized, backendSegment+"/") {
		return base + strings.TrimPrefix(normalized, backendSegment)
	}

	return base + normalized
}
