package indexer

import (
	"context"
	"iter"

	"flickrindexer/pkg/flickr"
	"flickrindexer/pkg/params"
)

// countingSeq yields photos and records how many were pulled
type countingSeq struct {
	photos []flickr.Photo
	err    error
	pulled int
}

func (s *countingSeq) seq() iter.Seq2[flickr.Photo, error] {
	return func(yield func(flickr.Photo, error) bool) {
		for _, p := range s.photos {
			s.pulled++
			if !yield(p, nil) {
				return
			}
		}
		if s.err != nil {
			yield(flickr.Photo{}, s.err)
		}
	}
}

func photo(id, url, license string) flickr.Photo {
	return flickr.Photo{ID: id, Owner: "owner@N01", Title: "photo " + id, URLL: url, License: license}
}

// fakeSearcher records the arguments of every search
type fakeSearcher struct {
	groups   map[string]string
	lookups  []string
	searches []params.Params
	results  []flickr.Photo
	err      error
}

func (f *fakeSearcher) LookupGroup(ctx context.Context, groupURL string) (string, error) {
	f.lookups = append(f.lookups, groupURL)
	if f.err != nil {
		return "", f.err
	}
	return f.groups[groupURL], nil
}

func (f *fakeSearcher) Search(ctx context.Context, args params.Params) iter.Seq2[flickr.Photo, error] {
	f.searches = append(f.searches, args)
	s := &countingSeq{photos: f.results}
	return s.seq()
}
