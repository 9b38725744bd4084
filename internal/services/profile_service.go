package services

import (
	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/models"
)

// ProfileService reads and replaces the site profile
type ProfileService struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(store DocumentStore, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{store: store, logger: logger.Named("profile")}
}

// Get returns the current profile
func (s *ProfileService) Get() (*models.Profile, error) {
	var profile models.Profile
	err := s.store.View(func(doc *models.Document) error {
		profile = *doc.Config
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces all profile fields
func (s *ProfileService) Update(profile models.Profile) (*models.Profile, error) {
	err := s.store.Update(func(doc *models.Document) error {
		*doc.Config = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("name", profile.Name))
	return &profile, nil
}

// Site returns the profile and project list as they are shown on the home page
func (s *ProfileService) Site() (*models.Document, error) {
	var site *models.Document
	err := s.store.View(func(doc *models.Document) error {
		site = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}
