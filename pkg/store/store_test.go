package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), DatabaseName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func image(id int64, title string) Image {
	return Image{
		ID:      id,
		Title:   title,
		Source:  "https://www.flickr.com/photos/o@N01/" + title + "/",
		Image:   "https://live.staticflickr.com/" + title + "_b.jpg",
		License: "Attribution License",
		Status:  StatusUnposted,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestOpenMissingDirectory(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", DatabaseName))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseName)
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, path, s.Path())
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))

	images, err := s.Images(context.Background())
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestPersist(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rows := []Image{image(3, "c"), image(1, "a"), image(2, "b")}
	require.NoError(t, s.Persist(ctx, rows))

	got, err := s.Images(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("Images() mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistTwiceLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rows := []Image{image(1, "a"), image(2, "b")}
	require.NoError(t, s.Persist(ctx, rows))
	require.NoError(t, s.Persist(ctx, rows))

	got, err := s.Images(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPersistConflictKeepsExistingRow(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	existing := image(1, "a")
	require.NoError(t, s.Persist(ctx, []Image{existing}))

	changed := existing
	changed.Title = "renamed"
	changed.Status = StatusSuccess
	require.NoError(t, s.Persist(ctx, []Image{changed, image(2, "b")}))

	got, err := s.Images(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Image{existing, image(2, "b")}, got); diff != "" {
		t.Errorf("Images() mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistEmptyBatch(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Persist(context.Background(), nil))
}

func TestPersistWithoutSchemaFails(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), DatabaseName))
	require.NoError(t, err)
	defer s.Close()

	assert.Error(t, s.Persist(context.Background(), []Image{image(1, "a")}))
}

func TestPersistCanceledContext(t *testing.T) {
	s := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Persist(ctx, []Image{image(1, "a")}))

	got, err := s.Images(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	posted := image(3, "c")
	posted.Status = StatusSuccess
	require.NoError(t, s.Persist(ctx, []Image{image(1, "a"), image(2, "b"), posted}))

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[Status]int{StatusUnposted: 2, StatusSuccess: 1}, counts)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DatabaseName)

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.Persist(ctx, []Image{image(1, "a")}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Images(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Image{image(1, "a")}, got)
}

func TestPrepareCollectionDir(t *testing.T) {
	root := t.TempDir()

	dir, err := PrepareCollectionDir(root, "cats")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cats"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directory is fine
	_, err = PrepareCollectionDir(root, "cats")
	assert.NoError(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unposted", StatusUnposted.String())
	assert.Equal(t, "image_too_large", StatusImageTooLarge.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
