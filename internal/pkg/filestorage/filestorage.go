// Package filestorage validates, resizes and stores uploaded images on the
// local filesystem. Records reference stored files by bare filename; the
// directory layout is owned by this package.
package filestorage

import (
	"errors"
	"io"
	"mime/multipart"
)

// Upload validation errors
var (
	// ErrExtensionNotAllowed is returned when the file extension is not in
	// the field's allow-list.
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	// ErrImageTooLarge is returned when the image exceeds the maximum
	// dimensions and force-resize is off.
	ErrImageTooLarge = errors.New("image exceeds maximum dimensions")
	// ErrInvalidImage is returned when the file cannot be decoded as an image.
	ErrInvalidImage = errors.New("file is not a valid image")
)

// ImageFieldConfig describes the upload policy of one image field.
type ImageFieldConfig struct {
	// Dir is the subdirectory under the storage base path (e.g. "students")
	Dir string
	// URLPrefix is the public URL path prefix for stored files
	// (e.g. "/uploads/students/")
	URLPrefix string
	// AllowedExtensions is the lowercase extension allow-list without dots
	AllowedExtensions []string
	// MaxWidth and MaxHeight bound the stored image dimensions
	MaxWidth  int
	MaxHeight int
	// ForceResize downscales oversized images instead of rejecting them
	ForceResize bool
	// ThumbnailWidth and ThumbnailHeight enable a thumbnail copy when > 0
	ThumbnailWidth  int
	ThumbnailHeight int
}

// ImageStore is the interface the admin backend stores images through.
type ImageStore interface {
	// Store validates and persists an uploaded image, returning the
	// generated filename the caller should persist on the owning record.
	Store(cfg ImageFieldConfig, originalFilename string, r io.Reader) (string, error)

	// StoreUpload is a convenience wrapper over Store for multipart uploads.
	StoreUpload(cfg ImageFieldConfig, fileHeader *multipart.FileHeader) (string, error)

	// Delete removes a stored image and its thumbnail. Idempotent.
	Delete(cfg ImageFieldConfig, filename string) error

	// URL composes the public URL for a stored filename.
	URL(cfg ImageFieldConfig, filename string) string

	// ThumbnailURL composes the public URL for a stored file's thumbnail.
	ThumbnailURL(cfg ImageFieldConfig, filename string) string
}
