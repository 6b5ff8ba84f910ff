package indexer

import (
	"context"
	"fmt"
	"iter"

	"flickrindexer/pkg/flickr"
	"flickrindexer/pkg/params"
)

// CommonArgs are added to every search. They restrict results to
// shareable licenses and photos, and ask for the fields a row needs.
func CommonArgs() params.Params {
	return params.New(
		"license", "1,2,3,4,5,6,7,9,10",
		"content_type", "1",
		"per_page", "500",
		"extras", "license,url_l",
	)
}

// RunQuery resolves group_name to group_id, adds CommonArgs and starts the
// search. The configured spec is not modified. Common args win over the
// spec's values for the same key.
func RunQuery(ctx context.Context, api Searcher, spec params.Params) (iter.Seq2[flickr.Photo, error], error) {
	args := spec.Clone()

	if name, ok := args.Get("group_name"); ok {
		groupID, err := api.LookupGroup(ctx, flickr.GroupURL(name))
		if err != nil {
			return nil, fmt.Errorf("resolve group %q: %w", name, err)
		}
		args.Delete("group_name")
		args.Set("group_id", groupID)
	}

	return api.Search(ctx, params.Merge(args, CommonArgs())), nil
}
