package filestorage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() ImageFieldConfig {
	return ImageFieldConfig{
		Dir:               "students",
		URLPrefix:         "/uploads/students/",
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
		MaxWidth:          100,
		MaxHeight:         100,
		ForceResize:       true,
		ThumbnailWidth:    40,
		ThumbnailHeight:   40,
	}
}

// pngBytes renders a width x height PNG for upload tests
func pngBytes(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeStored(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return entries
}

func TestStoreRejectsDisallowedExtension(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	_, err = store.Store(cfg, "malware.exe", pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, ErrExtensionNotAllowed)

	assert.Empty(t, dirEntries(t, filepath.Join(base, cfg.Dir)), "no file may be written on rejection")
}

func TestStoreRejectsNonImageContent(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	_, err = store.Store(cfg, "fake.png", bytes.NewBufferString("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	assert.Empty(t, dirEntries(t, filepath.Join(base, cfg.Dir)))
}

func TestStoreKeepsSmallImageDimensions(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	filename, err := store.Store(cfg, "photo.png", pngBytes(t, 60, 80))
	require.NoError(t, err)

	stored := decodeStored(t, store.FullPath(cfg, filename))
	assert.Equal(t, 60, stored.Bounds().Dx())
	assert.Equal(t, 80, stored.Bounds().Dy())
}

func TestStoreForceResizePreservesAspectRatio(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	filename, err := store.Store(cfg, "wide.png", pngBytes(t, 400, 200))
	require.NoError(t, err)

	stored := decodeStored(t, store.FullPath(cfg, filename))
	assert.Equal(t, 100, stored.Bounds().Dx())
	assert.Equal(t, 50, stored.Bounds().Dy())
}

func TestStoreRejectsOversizedWithoutForceResize(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.ForceResize = false
	_, err = store.Store(cfg, "huge.png", pngBytes(t, 400, 200))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	assert.Empty(t, dirEntries(t, filepath.Join(base, cfg.Dir)))
}

func TestStoreWritesThumbnail(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	filename, err := store.Store(cfg, "photo.png", pngBytes(t, 80, 80))
	require.NoError(t, err)

	thumbPath := store.FullPath(cfg, thumbnailName(filename))
	thumb := decodeStored(t, thumbPath)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), cfg.ThumbnailWidth)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), cfg.ThumbnailHeight)
}

func TestDeleteRemovesImageAndThumbnail(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	filename, err := store.Store(cfg, "photo.png", pngBytes(t, 50, 50))
	require.NoError(t, err)

	require.NoError(t, store.Delete(cfg, filename))
	assert.Empty(t, dirEntries(t, filepath.Join(base, cfg.Dir)))

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(cfg, filename))
}

func TestDeleteRejectsPathTraversal(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	assert.Error(t, store.Delete(testConfig(), "../../etc/passwd"))
}

func TestURLComposition(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalImageStore(base)
	require.NoError(t, err)

	cfg := testConfig()
	assert.Equal(t, "/uploads/students/a.png", store.URL(cfg, "a.png"))
	assert.Equal(t, "/uploads/students/a_thumb.png", store.ThumbnailURL(cfg, "a.png"))
	assert.Empty(t, store.URL(cfg, ""))
}
