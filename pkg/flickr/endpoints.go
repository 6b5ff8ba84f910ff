package flickr

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the Flickr REST endpoint
	BaseURL = "https://api.flickr.com/services/rest/"

	MethodEcho        = "flickr.test.echo"
	MethodLicenses    = "flickr.photos.licenses.getInfo"
	MethodLookupGroup = "flickr.urls.lookupGroup"
	MethodSearch      = "flickr.photos.search"

	groupsURL = "https://flickr.com/groups/"
	photosURL = "https://www.flickr.com/photos/"

	// path segment written for photos that arrive without an owner, matching
	// the rows existing indexes already hold
	missingOwner = "None"
)

// GroupURL returns the public URL of a group given its short name
func GroupURL(name string) string {
	return groupsURL + url.PathEscape(name)
}

// PhotoPageURL returns the public page of a photo. The URL is always built;
// an empty owner becomes "None".
func PhotoPageURL(owner, photoID string) string {
	if owner == "" {
		owner = missingOwner
	}
	return fmt.Sprintf("%s%s/%s/", photosURL, owner, photoID)
}

// IsValidImageURL reports whether raw is an absolute http(s) URL with a host
func IsValidImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
