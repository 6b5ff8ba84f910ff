package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickrindexer/pkg/params"
)

func TestCommonArgs(t *testing.T) {
	args := CommonArgs()
	assert.Equal(t, []string{"license", "content_type", "per_page", "extras"}, args.Keys())

	license, _ := args.Get("license")
	assert.Equal(t, "1,2,3,4,5,6,7,9,10", license)

	// each call is independent
	args.Set("per_page", "1")
	perPage, _ := CommonArgs().Get("per_page")
	assert.Equal(t, "500", perPage)
}

func TestRunQueryAddsCommonArgs(t *testing.T) {
	api := &fakeSearcher{}
	spec := params.New("tags", "cat", "per_page", "10", "sort", "relevance")

	_, err := RunQuery(context.Background(), api, spec)
	require.NoError(t, err)

	require.Len(t, api.searches, 1)
	got := api.searches[0]
	assert.Equal(t, []string{"tags", "per_page", "sort", "license", "content_type", "extras"}, got.Keys())

	// common args win on collision
	perPage, _ := got.Get("per_page")
	assert.Equal(t, "500", perPage)
	tags, _ := got.Get("tags")
	assert.Equal(t, "cat", tags)
	assert.Empty(t, api.lookups)
}

func TestRunQueryResolvesGroupName(t *testing.T) {
	api := &fakeSearcher{groups: map[string]string{
		"https://flickr.com/groups/catsofflickr": "12345@N01",
	}}
	spec := params.New("group_name", "catsofflickr", "tags", "cat")

	_, err := RunQuery(context.Background(), api, spec)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://flickr.com/groups/catsofflickr"}, api.lookups)

	got := api.searches[0]
	assert.False(t, got.Has("group_name"))
	groupID, ok := got.Get("group_id")
	assert.True(t, ok)
	assert.Equal(t, "12345@N01", groupID)

	// configured spec is left alone
	assert.Equal(t, []string{"group_name", "tags"}, spec.Keys())
}

func TestRunQueryGroupLookupFailure(t *testing.T) {
	api := &fakeSearcher{err: assert.AnError}

	_, err := RunQuery(context.Background(), api, params.New("group_name", "nobody"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "nobody")
	assert.Empty(t, api.searches)
}
