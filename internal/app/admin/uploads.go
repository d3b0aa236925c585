package admin

import (
	"github.com/dadl-lab/labsite/internal/pkg/filestorage"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// allowedImageExtensions is the upload allow-list shared by every image field
var allowedImageExtensions = []string{"jpg", "jpeg", "png", "gif"}

// ProfessorPhotoConfig is the upload policy for the professor's photo:
// oversized images are scaled down rather than rejected.
func ProfessorPhotoConfig() filestorage.ImageFieldConfig {
	return filestorage.ImageFieldConfig{
		Dir:               "professor",
		URLPrefix:         "/uploads/professor/",
		AllowedExtensions: allowedImageExtensions,
		MaxWidth:          800,
		MaxHeight:         800,
		ForceResize:       true,
		ThumbnailWidth:    100,
		ThumbnailHeight:   100,
	}
}

// StudentPhotoConfig is the upload policy for student photos
func StudentPhotoConfig() filestorage.ImageFieldConfig {
	return filestorage.ImageFieldConfig{
		Dir:               "students",
		URLPrefix:         "/uploads/students/",
		AllowedExtensions: allowedImageExtensions,
		MaxWidth:          600,
		MaxHeight:         600,
		ForceResize:       true,
		ThumbnailWidth:    100,
		ThumbnailHeight:   100,
	}
}

// ProjectImageConfig is the upload policy for project images. Unlike photos,
// images past the size limit are rejected so editors notice and crop them.
func ProjectImageConfig() filestorage.ImageFieldConfig {
	return filestorage.ImageFieldConfig{
		Dir:               "projects",
		URLPrefix:         "/uploads/projects/",
		AllowedExtensions: allowedImageExtensions,
		MaxWidth:          1200,
		MaxHeight:         800,
		ForceResize:       false,
		ThumbnailWidth:    150,
		ThumbnailHeight:   150,
	}
}

// discardImages best-effort removes stored files; a failed removal only
// leaves an orphaned file behind, so it is logged and not propagated.
func discardImages(store filestorage.ImageStore, cfg filestorage.ImageFieldConfig, filenames ...string) {
	for _, filename := range filenames {
		if filename == "" {
			continue
		}
		if err := store.Delete(cfg, filename); err != nil {
			logger.Warn().Err(err).Str("filename", filename).Str("dir", cfg.Dir).Msg("Failed to remove stored image")
		}
	}
}
