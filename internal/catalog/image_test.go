package catalog_test

import (
	"testing"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"empty path uses placeholder", "https://api.example.com", "", catalog.PlaceholderImage},
		{"absolute http unchanged", "https://api.example.com", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https unchanged", "https://api.example.com", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"scheme is case insensitive", "https://api.example.com", "HTTPS://cdn.example.com/a.jpg", "HTTPS://cdn.example.com/a.jpg"},
		{"data url unchanged", "https://api.example.com", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"local src asset unchanged", "https://api.example.com", "/src/assets/logo.png", "/src/assets/logo.png"},
		{"local public asset unchanged", "https://api.example.com", "/public/banner.jpg", "/public/banner.jpg"},
		{"relative path joined", "https://api.example.com", "uploads/a.jpg", "https://api.example.com/uploads/a.jpg"},
		{"rooted path joined", "https://api.example.com/", "/uploads/a.jpg", "https://api.example.com/uploads/a.jpg"},
		{"backend segment deduplicated", "https://example.com/backend", "/backend/uploads/a.jpg", "https://example.com/backend/uploads/a.jpg"},
		{"backend segment deduplicated with trailing slash", "https://example.com/backend/", "backend/uploads/a.jpg", "https://example.com/backend/uploads/a.jpg"},
		{"backend kept when base lacks it", "https://example.com", "/backend/uploads/a.jpg", "https://example.com/backend/uploads/a.jpg"},
		{"backendish prefix is not a segment", "https://example.com/backend", "/backend-old/a.jpg", "https://example.com/backend/backend-old/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.ResolveImageURL(tt.base, tt.path))
		})
	}
}
