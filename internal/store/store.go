package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/apperrors"
	"dconn.dev/portfolio/internal/metrics"
	"dconn.dev/portfolio/internal/models"
)

// Store is the sole gateway to the persisted document
type Store interface {
	Load() (*models.Document, error)
	Save(doc *models.Document) error
}

// JSONStore keeps the whole document in a single JSON file
type JSONStore struct {
	path    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewJSONStore creates a JSONStore backed by the file at path.
// The file does not need to exist yet.
func NewJSONStore(path string, logger *zap.Logger, m *metrics.Metrics) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{
		path:    path,
		logger:  logger.Named("store"),
		metrics: m,
	}
}

// Path returns the backing file path
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the document from disk.
//
// A missing, empty or unparsable file is replaced by the default document,
// which is then returned. The only errors returned are write failures while
// seeding that default.
func (s *JSONStore) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.reset("missing")
		}
		s.logger.Warn("Store file unreadable, resetting to defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return s.reset("corrupt")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.reset("empty")
	}

	doc, err := decode(data)
	if err != nil {
		s.logger.Warn("Store file corrupted, resetting to defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return s.reset("corrupt")
	}

	if s.metrics != nil {
		s.metrics.StoreLoadsTotal.Inc()
	}
	return doc, nil
}

// Save serializes the full document and replaces the backing file.
// The write goes to a temp file in the same directory which is then renamed
// over the original, so readers never see a partial document.
func (s *JSONStore) Save(doc *models.Document) error {
	if err := s.write(doc); err != nil {
		if s.metrics != nil {
			s.metrics.StoreErrorsTotal.WithLabelValues("save").Inc()
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.StoreSavesTotal.Inc()
		s.metrics.ProjectsCount.Set(float64(len(doc.Projects)))
	}
	return nil
}

// Reset overwrites the backing file with the default document
func (s *JSONStore) Reset() (*models.Document, error) {
	return s.reset("manual")
}

func (s *JSONStore) reset(reason string) (*models.Document, error) {
	doc := models.DefaultDocument()
	if err := s.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to seed default document: %w", err)
	}

	s.logger.Info("Store reset to default document",
		zap.String("path", s.path),
		zap.String("reason", reason),
	)
	if s.metrics != nil {
		s.metrics.StoreResetsTotal.WithLabelValues(reason).Inc()
	}
	return doc, nil
}

func (s *JSONStore) write(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set store file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// decode parses data into a document. A document without a config object is
// treated as corrupt; a missing project list is read as empty.
func decode(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptStore, err)
	}
	if doc.Config == nil {
		return nil, fmt.Errorf("%w: missing config", apperrors.ErrCorruptStore)
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	return &doc, nil
}
