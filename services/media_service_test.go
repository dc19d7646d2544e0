package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"svd_ambalaj_server/database/dbtest"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// brokenStore fails every removal with a non-missing error
type brokenStore struct {
	*LocalFileStore
}

func (brokenStore) Remove(context.Context, string) error {
	return errors.New("permission denied")
}

func newTestMedia(t *testing.T, store FileStore) *MediaService {
	t.Helper()
	return NewMediaService(testLogger(), dbtest.New(t), nil, store, 1024)
}

func TestFetchLandingMediaDefault(t *testing.T) {
	ms := newTestMedia(t, NewLocalFileStore(t.TempDir(), ""))

	landing, err := ms.FetchLandingMedia(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, landing.ID)
	assert.Equal(t, structs.HeroVideo{}, landing.HeroVideo)
	assert.NotNil(t, landing.HeroGallery)
	assert.Empty(t, landing.HeroGallery)
	assert.NotNil(t, landing.MediaHighlights)
	assert.Empty(t, landing.MediaHighlights)
}

func TestUpdateLandingMediaReplaces(t *testing.T) {
	ms := newTestMedia(t, NewLocalFileStore(t.TempDir(), ""))
	ctx := context.Background()

	_, err := ms.UpdateLandingMedia(ctx, structs.LandingMediaPayload{
		HeroVideo:   structs.HeroVideo{Src: "/hero.mp4", Poster: "/hero.jpg"},
		HeroGallery: []string{"a.jpg", "b.jpg", "c.jpg"},
		MediaHighlights: []structs.MediaHighlight{
			{Title: "One", Image: "1.jpg"},
			{Title: "Two", Image: "2.jpg"},
		},
	})
	require.NoError(t, err)

	updated, err := ms.UpdateLandingMedia(ctx, structs.LandingMediaPayload{
		HeroVideo:   structs.HeroVideo{Src: " /new.mp4 "},
		HeroGallery: []string{" x.jpg ", "", "  "},
		MediaHighlights: []structs.MediaHighlight{
			{Title: "No image"},
			{Title: "Kept", Caption: "Caption", Image: "k.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, structs.HeroVideo{Src: "/new.mp4"}, updated.HeroVideo)
	assert.Equal(t, []string{"x.jpg"}, updated.HeroGallery)
	assert.Equal(t, []structs.MediaHighlight{{Title: "Kept", Caption: "Caption", Image: "k.jpg"}}, updated.MediaHighlights)

	fetched, err := ms.FetchLandingMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestUploadStoresAndRecords(t *testing.T) {
	dir := t.TempDir()
	ms := newTestMedia(t, NewLocalFileStore(dir, "https://cdn.example.com/"))
	ctx := context.Background()

	asset, err := ms.Upload(ctx, UploadInput{
		OriginalName: "Logo.PNG",
		Body:         bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.MimeType)
	assert.True(t, strings.HasSuffix(asset.StorageKey, ".png"))
	assert.Equal(t, "https://cdn.example.com/uploads/"+asset.StorageKey, asset.URL)
	assert.Equal(t, int64(len(pngHeader)), asset.Size)
	require.NotNil(t, asset.Checksum)
	assert.Len(t, *asset.Checksum, 64)

	stored, err := os.ReadFile(filepath.Join(dir, asset.StorageKey))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	listed, err := ms.ListMedia(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, asset.ID, listed[0].ID)
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	ms := newTestMedia(t, NewLocalFileStore(t.TempDir(), ""))
	ctx := context.Background()

	_, err := ms.Upload(ctx, UploadInput{OriginalName: "notes.txt", Body: strings.NewReader("plain text")})
	assert.True(t, lib.IsInvalidInput(err))

	_, err = ms.Upload(ctx, UploadInput{OriginalName: "big.png", Body: io.MultiReader(bytes.NewReader(pngHeader), bytes.NewReader(make([]byte, 2048)))})
	assert.True(t, lib.IsInvalidInput(err))

	_, err = ms.Upload(ctx, UploadInput{OriginalName: "empty.png", Body: strings.NewReader("")})
	assert.True(t, lib.IsInvalidInput(err))
}

func TestCreateMediaEntryDefaults(t *testing.T) {
	ms := newTestMedia(t, NewLocalFileStore(t.TempDir(), ""))
	ctx := context.Background()

	_, err := ms.CreateMediaEntry(ctx, structs.MediaEntryPayload{})
	assert.True(t, lib.IsInvalidInput(err))

	asset, err := ms.CreateMediaEntry(ctx, structs.MediaEntryPayload{Filename: "hero.mp4", Size: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, asset.ID)
	assert.Equal(t, "hero.mp4", asset.StorageKey)
	assert.Nil(t, asset.Checksum)
	assert.NotNil(t, asset.Metadata)

	fetched, err := ms.GetMediaByID(ctx, asset.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, int64(10), fetched.Size)

	missing, err := ms.GetMediaByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteMediaToleratesMissingFile(t *testing.T) {
	ms := newTestMedia(t, NewLocalFileStore(t.TempDir(), ""))
	ctx := context.Background()

	asset, err := ms.CreateMediaEntry(ctx, structs.MediaEntryPayload{Filename: "never-written.jpg"})
	require.NoError(t, err)

	deleted, err := ms.DeleteMedia(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.ID, deleted.ID)

	_, err = ms.DeleteMedia(ctx, asset.ID)
	assert.True(t, lib.IsNotFound(err))
}

func TestDeleteMediaReportsStorageFailure(t *testing.T) {
	ms := newTestMedia(t, brokenStore{NewLocalFileStore(t.TempDir(), "")})
	ctx := context.Background()

	asset, err := ms.CreateMediaEntry(ctx, structs.MediaEntryPayload{Filename: "a.jpg"})
	require.NoError(t, err)

	deleted, err := ms.DeleteMedia(ctx, asset.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrStorage))
	require.NotNil(t, deleted, "the deleted record is still reported")
	assert.Equal(t, asset.ID, deleted.ID)

	gone, err := ms.GetMediaByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "row deletion is not rolled back")
}

func TestLocalFileStoreRejectsTraversal(t *testing.T) {
	store := NewLocalFileStore(t.TempDir(), "")
	_, err := store.Save(context.Background(), "../escape.png", bytes.NewReader(pngHeader))
	assert.Error(t, err)
	assert.True(t, errors.Is(store.Remove(context.Background(), "absent.png"), os.ErrNotExist))
}
