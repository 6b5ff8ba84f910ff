package indexer

import (
	"fmt"
	"iter"
	"strconv"

	"flickrindexer/pkg/errors"
	"flickrindexer/pkg/flickr"
	"flickrindexer/pkg/store"
)

// Materialize turns search results into at most limit rows. Photos without
// a usable large image URL, and ids already accepted, are skipped and do not
// count toward the limit. No further results are pulled once the limit is
// reached.
func Materialize(photos iter.Seq2[flickr.Photo, error], licenses LicenseTable, limit int) ([]store.Image, error) {
	rows := []store.Image{}
	if limit <= 0 {
		return rows, nil
	}

	seen := make(map[int64]struct{})
	for photo, err := range photos {
		if err != nil {
			return nil, fmt.Errorf("fetch results: %w", err)
		}

		id, err := strconv.ParseInt(photo.ID, 10, 64)
		if err != nil {
			return nil, errors.New(errors.ErrorTypeParsing, 0, "photo id %q is not numeric", photo.ID)
		}

		if _, dup := seen[id]; dup {
			continue
		}
		if !flickr.IsValidImageURL(photo.URLL) {
			continue
		}

		seen[id] = struct{}{}
		rows = append(rows, store.Image{
			ID:      id,
			Title:   photo.Title,
			Source:  flickr.PhotoPageURL(photo.Owner, photo.ID),
			Image:   photo.URLL,
			License: licenses.Name(photo.License),
			Status:  store.StatusUnposted,
		})

		if len(rows) >= limit {
			break
		}
	}

	return rows, nil
}
