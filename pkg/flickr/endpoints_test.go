package flickr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupURL(t *testing.T) {
	assert.Equal(t, "https://flickr.com/groups/catsofflickr", GroupURL("catsofflickr"))
	assert.Equal(t, "https://flickr.com/groups/big%20cats", GroupURL("big cats"))
}

func TestPhotoPageURL(t *testing.T) {
	assert.Equal(t, "https://www.flickr.com/photos/12345@N01/987/", PhotoPageURL("12345@N01", "987"))
	assert.Equal(t, "https://www.flickr.com/photos/None/987/", PhotoPageURL("", "987"))
}

func TestIsValidImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://live.staticflickr.com/65535/1_abc_b.jpg", true},
		{"http://farm1.staticflickr.com/1/1_abc_b.jpg", true},
		{"", false},
		{"/65535/1_abc_b.jpg", false},
		{"ftp://example.com/a.jpg", false},
		{"https://", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidImageURL(tt.url))
		})
	}
}
