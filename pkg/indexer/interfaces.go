package indexer

import (
	"context"
	"iter"

	"flickrindexer/pkg/flickr"
	"flickrindexer/pkg/params"
)

// FlickrClient is the part of the Flickr API the indexer uses
type FlickrClient interface {
	Authenticate(ctx context.Context) error
	LicenseSource
	Searcher
}

// LicenseSource lists the licenses photos can carry
type LicenseSource interface {
	Licenses(ctx context.Context) ([]flickr.License, error)
}

// Searcher runs searches, resolving group names on the way
type Searcher interface {
	LookupGroup(ctx context.Context, groupURL string) (string, error)
	Search(ctx context.Context, args params.Params) iter.Seq2[flickr.Photo, error]
}
