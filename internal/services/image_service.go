package services

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/metrics"
)

// allowedImageExtensions lists the accepted upload extensions, lowercase without the dot
var allowedImageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Upload is an image file submitted with a project form
type Upload struct {
	Filename string
	Content  io.Reader
}

// ImageSource carries the two ways a project image can be supplied.
// Both are optional.
type ImageSource struct {
	Upload *Upload
	URL    string
}

// ImageService stores uploaded project images and resolves image sources
type ImageService struct {
	dir       string
	urlPrefix string
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewImageService creates an ImageService writing uploads to dir and
// serving them under urlPrefix
func NewImageService(dir, urlPrefix string, logger *zap.Logger, m *metrics.Metrics) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		dir:       dir,
		urlPrefix: urlPrefix,
		logger:    logger.Named("images"),
		metrics:   m,
	}
}

// AllowedImage reports whether filename has an accepted image extension
func AllowedImage(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return ext != "" && allowedImageExtensions[strings.ToLower(ext)]
}

// Resolve picks the image for a project.
//
// An upload with an allowed extension is stored and wins over the URL.
// Uploads with other extensions are ignored. Otherwise a non-empty URL is
// returned verbatim. An empty result means no image was supplied.
func (s *ImageService) Resolve(src ImageSource) (string, error) {
	if src.Upload != nil && src.Upload.Filename != "" {
		if AllowedImage(src.Upload.Filename) {
			return s.store(src.Upload)
		}
		s.logger.Debug("Ignoring upload with disallowed extension",
			zap.String("filename", src.Upload.Filename),
		)
		s.count("ignored")
	}

	if url := strings.TrimSpace(src.URL); url != "" {
		return src.URL, nil
	}
	return "", nil
}

// store writes the upload under a fresh random name and returns its served path
func (s *ImageService) store(u *Upload) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(u.Filename)
	dest := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(f, u.Content); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	s.logger.Info("Stored project image",
		zap.String("original", u.Filename),
		zap.String("file", dest),
	)
	s.count("stored")
	return path.Join(s.urlPrefix, name), nil
}

func (s *ImageService) count(result string) {
	if s.metrics != nil {
		s.metrics.ImageUploadsTotal.WithLabelValues(result).Inc()
	}
}
