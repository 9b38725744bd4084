package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/models"
	"dconn.dev/portfolio/internal/services"
)

// ProfileHandler handles the site profile and home page endpoints
type ProfileHandler struct {
	responder
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(ps *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		responder:      responder{logger: logger},
		profileService: ps,
	}
}

// GetProfile handles GET /api/config
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/config - every field is required
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := parseProfile(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.profileService.Update(*profile)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// GetSite handles GET /api/site - profile and projects in one response
func (h *ProfileHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := h.profileService.Site()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, site)
}

// profileInput uses pointers so absent fields can be told apart from empty ones
type profileInput struct {
	Name              *string `json:"name"`
	CourseNumber      *string `json:"course_number"`
	CourseDescription *string `json:"course_description"`
	ProfileInfo       *string `json:"profile_info"`
}

func parseProfile(r *http.Request) (*models.Profile, error) {
	var in profileInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
	} else {
		if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		in = profileInput{
			Name:              formValue(r, "name"),
			CourseNumber:      formValue(r, "course_number"),
			CourseDescription: formValue(r, "course_description"),
			ProfileInfo:       formValue(r, "profile_info"),
		}
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"name", in.Name},
		{"course_number", in.CourseNumber},
		{"course_description", in.CourseDescription},
		{"profile_info", in.ProfileInfo},
	}
	for _, f := range fields {
		if f.value == nil {
			return nil, fmt.Errorf("missing field: %s", f.name)
		}
	}

	return &models.Profile{
		Name:              *in.Name,
		CourseNumber:      *in.CourseNumber,
		CourseDescription: *in.CourseDescription,
		ProfileInfo:       *in.ProfileInfo,
	}, nil
}

func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
