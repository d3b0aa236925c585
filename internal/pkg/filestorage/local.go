package filestorage

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// LocalImageStore stores images under a base directory on the local
// filesystem, one subdirectory per entity type.
type LocalImageStore struct {
	basePath string
}

var _ ImageStore = (*LocalImageStore)(nil)

// NewLocalImageStore creates a LocalImageStore rooted at basePath.
func NewLocalImageStore(basePath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalImageStore{basePath: basePath}, nil
}

// extensionAllowed checks the lowercase extension against the allow-list
func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// thumbnailName derives the thumbnail filename from a stored filename
// (e.g. "abc.png" -> "abc_thumb.png").
func thumbnailName(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_thumb" + ext
}

// Store validates and persists an uploaded image per the field config.
// The returned filename is what the owning record should store.
func (ls *LocalImageStore) Store(cfg ImageFieldConfig, originalFilename string, r io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	if !extensionAllowed(ext, cfg.AllowedExtensions) {
		return "", ErrExtensionNotAllowed
	}

	img, err := decodeImage(r)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if cfg.MaxWidth > 0 && cfg.MaxHeight > 0 &&
		(bounds.Dx() > cfg.MaxWidth || bounds.Dy() > cfg.MaxHeight) {
		if !cfg.ForceResize {
			return "", ErrImageTooLarge
		}
		img = downscale(img, cfg.MaxWidth, cfg.MaxHeight)
	}

	dirPath := filepath.Join(ls.basePath, cfg.Dir)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + "." + ext
	dstPath := filepath.Join(dirPath, filename)

	if err := ls.writeImage(dstPath, img, ext); err != nil {
		return "", err
	}

	if cfg.ThumbnailWidth > 0 && cfg.ThumbnailHeight > 0 {
		thumb := downscale(img, cfg.ThumbnailWidth, cfg.ThumbnailHeight)
		thumbPath := filepath.Join(dirPath, thumbnailName(filename))
		if err := ls.writeImage(thumbPath, thumb, ext); err != nil {
			// The main image is already on disk; don't leave it orphaned
			_ = os.Remove(dstPath)
			return "", err
		}
	}

	logger.Info().
		Str("original", originalFilename).
		Str("saved_as", filename).
		Str("dir", cfg.Dir).
		Msg("Image stored")
	return filename, nil
}

// StoreUpload validates and persists a multipart upload
func (ls *LocalImageStore) StoreUpload(cfg ImageFieldConfig, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ls.Store(cfg, fileHeader.Filename, file)
}

func (ls *LocalImageStore) writeImage(path string, img image.Image, ext string) error {
	dst, err := os.Create(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if err := encodeImage(dst, img, ext); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to encode image")
		_ = os.Remove(path)
		return fmt.Errorf("failed to save image: %w", err)
	}

	return nil
}

// Delete removes a stored image and its thumbnail. Missing files are not an
// error, so deletes are idempotent.
func (ls *LocalImageStore) Delete(cfg ImageFieldConfig, filename string) error {
	if filename == "" {
		return nil
	}

	// Stored filenames are generated by this package; refuse anything that
	// looks like a path.
	base := filepath.Base(filename)
	if base == "" || base == "." || base != filename {
		return fmt.Errorf("invalid stored filename: %s", filename)
	}

	for _, name := range []string{filename, thumbnailName(filename)} {
		path := filepath.Join(ls.basePath, cfg.Dir, name)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			logger.Error().Err(err).Str("path", path).Msg("Failed to delete file")
			return fmt.Errorf("failed to delete file: %w", err)
		}
	}

	logger.Info().Str("filename", filename).Str("dir", cfg.Dir).Msg("Image deleted")
	return nil
}

// URL composes the public URL for a stored filename
func (ls *LocalImageStore) URL(cfg ImageFieldConfig, filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimRight(cfg.URLPrefix, "/") + "/" + filename
}

// ThumbnailURL composes the public URL for a stored file's thumbnail
func (ls *LocalImageStore) ThumbnailURL(cfg ImageFieldConfig, filename string) string {
	if filename == "" {
		return ""
	}
	return ls.URL(cfg, thumbnailName(filename))
}

// FullPath returns the filesystem path of a stored filename
func (ls *LocalImageStore) FullPath(cfg ImageFieldConfig, filename string) string {
	return filepath.Join(ls.basePath, cfg.Dir, filename)
}
