package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/apperrors"
	"dconn.dev/portfolio/internal/metrics"
	"dconn.dev/portfolio/internal/models"
)

// DocumentStore runs read and read-modify-write sequences on the persisted document
type DocumentStore interface {
	View(fn func(doc *models.Document) error) error
	Update(fn func(doc *models.Document) error) error
}

// ImageResolver turns an image source into a stored image path or URL
type ImageResolver interface {
	Resolve(src ImageSource) (string, error)
}

// ProjectService handles project-related operations
type ProjectService struct {
	store   DocumentStore
	images  ImageResolver
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(store DocumentStore, images ImageResolver, logger *zap.Logger, m *metrics.Metrics) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		store:   store,
		images:  images,
		logger:  logger.Named("projects"),
		metrics: m,
		now:     time.Now,
	}
}

// GetAll returns all projects in display order
func (s *ProjectService) GetAll() ([]models.Project, error) {
	var projects []models.Project
	err := s.store.View(func(doc *models.Document) error {
		projects = append(make([]models.Project, 0, len(doc.Projects)), doc.Projects...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id int64) (*models.Project, error) {
	var project models.Project
	err := s.store.View(func(doc *models.Document) error {
		i := doc.FindProject(id)
		if i < 0 {
			return projectNotFound(id)
		}
		project = doc.Projects[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create adds a new project at the end of the list.
// Fails with apperrors.ErrMissingImage when src yields no image.
func (s *ProjectService) Create(fields models.ProjectFields, src ImageSource) (*models.Project, error) {
	var project models.Project
	err := s.store.Update(func(doc *models.Document) error {
		image, err := s.images.Resolve(src)
		if err != nil {
			return err
		}
		if image == "" {
			return apperrors.ErrMissingImage
		}

		project = models.Project{
			ID:    s.nextID(doc),
			Image: image,
		}
		project.Apply(fields)
		doc.Projects = append(doc.Projects, project)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project added",
		zap.Int64("id", project.ID),
		zap.String("title", project.Title),
	)
	s.count("add")
	return &project, nil
}

// Update overwrites the fields of an existing project.
// The current image is kept when src yields nothing. A replaced image file
// is left on disk.
func (s *ProjectService) Update(id int64, fields models.ProjectFields, src ImageSource) (*models.Project, error) {
	var project models.Project
	err := s.store.Update(func(doc *models.Document) error {
		i := doc.FindProject(id)
		if i < 0 {
			return projectNotFound(id)
		}

		image, err := s.images.Resolve(src)
		if err != nil {
			return err
		}

		p := &doc.Projects[i]
		if image != "" {
			p.Image = image
		}
		p.Apply(fields)
		project = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", zap.Int64("id", id))
	s.count("edit")
	return &project, nil
}

// Delete removes every project with the given ID. Deleting an unknown ID is not an error.
func (s *ProjectService) Delete(id int64) error {
	removed := 0
	err := s.store.Update(func(doc *models.Document) error {
		kept := doc.Projects[:0]
		for _, p := range doc.Projects {
			if p.ID == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		doc.Projects = kept
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Project deleted",
		zap.Int64("id", id),
		zap.Int("removed", removed),
	)
	s.count("delete")
	return nil
}

// nextID returns the current time in milliseconds, bumped past the largest
// existing ID so IDs stay unique and increasing
func (s *ProjectService) nextID(doc *models.Document) int64 {
	id := s.now().UnixMilli()
	if maxID := doc.MaxProjectID(); id <= maxID {
		id = maxID + 1
	}
	return id
}

func (s *ProjectService) count(op string) {
	if s.metrics != nil {
		s.metrics.ProjectOpsTotal.WithLabelValues(op).Inc()
	}
}

func projectNotFound(id int64) error {
	return fmt.Errorf("project %d: %w", id, apperrors.ErrNotFound)
}
