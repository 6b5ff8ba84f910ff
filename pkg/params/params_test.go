package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetKeepsPosition(t *testing.T) {
	p := New("tags", "cat", "per_page", "10")
	p.Set("tags", "dog")
	p.Set("sort", "relevance")

	assert.Equal(t, []string{"tags", "per_page", "sort"}, p.Keys())
	v, ok := p.Get("tags")
	assert.True(t, ok)
	assert.Equal(t, "dog", v)
}

func TestDelete(t *testing.T) {
	p := New("a", "1", "b", "2", "c", "3")
	shared := p

	assert.True(t, p.Delete("b"))
	assert.False(t, p.Delete("missing"))
	assert.Equal(t, []string{"a", "c"}, p.Keys())
	// the removal must not shift the backing array of other copies
	assert.Equal(t, []string{"a", "b", "c"}, shared.Keys())
}

func TestMerge(t *testing.T) {
	t.Run("overlay wins on collision", func(t *testing.T) {
		base := New("tags", "cat", "license", "0", "per_page", "5")
		overlay := New("license", "1,2", "per_page", "500", "extras", "license")

		merged := Merge(base, overlay)

		assert.Equal(t, []string{"tags", "license", "per_page", "extras"}, merged.Keys())
		assert.Equal(t, "tags=cat license=1,2 per_page=500 extras=license", merged.String())
	})

	t.Run("inputs untouched", func(t *testing.T) {
		base := New("license", "0")
		overlay := New("license", "4")

		_ = Merge(base, overlay)

		v, _ := base.Get("license")
		assert.Equal(t, "0", v)
	})

	t.Run("empty base", func(t *testing.T) {
		merged := Merge(Params{}, New("content_type", "1"))
		assert.Equal(t, 1, merged.Len())
	})
}

func TestCloneIsIndependent(t *testing.T) {
	p := New("group_name", "cats")
	c := p.Clone()
	c.Set("group_name", "dogs")

	v, _ := p.Get("group_name")
	assert.Equal(t, "cats", v)
}

func TestValues(t *testing.T) {
	p := New("tags", "cat,kitten", "per_page", "500")
	assert.Equal(t, "per_page=500&tags=cat%2Ckitten", p.Values().Encode())
}

func TestUnmarshalYAML(t *testing.T) {
	t.Run("json document keeps order", func(t *testing.T) {
		var p Params
		err := yaml.Unmarshal([]byte(`{"tags": "cat", "min_upload_date": 1600000000, "tag_mode": "all", "in_gallery": true}`), &p)
		require.NoError(t, err)

		assert.Equal(t, []string{"tags", "min_upload_date", "tag_mode", "in_gallery"}, p.Keys())
		v, _ := p.Get("min_upload_date")
		assert.Equal(t, "1600000000", v)
		v, _ = p.Get("in_gallery")
		assert.Equal(t, "true", v)
	})

	t.Run("lists are comma joined", func(t *testing.T) {
		var p Params
		err := yaml.Unmarshal([]byte(`{"tags": ["cat", "kitten"]}`), &p)
		require.NoError(t, err)

		v, _ := p.Get("tags")
		assert.Equal(t, "cat,kitten", v)
	})

	t.Run("null dropped", func(t *testing.T) {
		var p Params
		err := yaml.Unmarshal([]byte(`{"tags": "cat", "group_name": null}`), &p)
		require.NoError(t, err)
		assert.False(t, p.Has("group_name"))
	})

	t.Run("nested object rejected", func(t *testing.T) {
		var p Params
		err := yaml.Unmarshal([]byte(`{"bbox": {"lat": 1}}`), &p)
		assert.Error(t, err)
	})

	t.Run("not a mapping", func(t *testing.T) {
		var p Params
		err := yaml.Unmarshal([]byte(`["cat"]`), &p)
		assert.Error(t, err)
	})
}
