package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/infras/s3"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/rooms/a.png", s3.PublicURL("https://cdn.example.com", "rooms/a.png"))
	assert.Equal(t, "https://cdn.example.com/rooms/a.png", s3.PublicURL("https://cdn.example.com/", "rooms/a.png"))
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		url      string
		expected string
	}{
		{name: "own url", domain: "https://cdn.example.com", url: "https://cdn.example.com/rooms/a.png", expected: "rooms/a.png"},
		{name: "trailing slash domain", domain: "https://cdn.example.com/", url: "https://cdn.example.com/rooms/a.png", expected: "rooms/a.png"},
		{name: "foreign url", domain: "https://cdn.example.com", url: "https://images.example.org/a.png", expected: ""},
		{name: "no domain", domain: "", url: "https://cdn.example.com/rooms/a.png", expected: ""},
		{name: "empty url", domain: "https://cdn.example.com", url: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s3.ObjectKey(tt.domain, tt.url))
		})
	}
}
