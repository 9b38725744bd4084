package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dconn.dev/portfolio/internal/models"
	"dconn.dev/portfolio/internal/services"
)

// multipartMemory is how much of a multipart form is kept in memory before spilling to disk
const multipartMemory = 8 << 20

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	responder
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		responder:      responder{logger: logger},
		projectService: ps,
	}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAll()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	form, err := parseProjectForm(r)
	if err != nil {
		h.respondFormError(w, err)
		return
	}
	defer form.close()

	project, err := h.projectService.Create(form.fields, form.image)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	form, err := parseProjectForm(r)
	if err != nil {
		h.respondFormError(w, err)
		return
	}
	defer form.close()

	project, err := h.projectService.Update(id, form.fields, form.image)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid project id")
		return 0, false
	}
	return id, true
}

func (h *ProjectHandler) respondFormError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.respondServiceError(w, err)
		return
	}
	h.respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
}

// projectForm is a parsed add/edit project submission
type projectForm struct {
	fields models.ProjectFields
	image  services.ImageSource
	close  func()
}

// parseProjectForm reads the project fields from a multipart or urlencoded form.
// title and description must be present; the links default to empty.
func parseProjectForm(r *http.Request) (*projectForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}

	for _, key := range []string{"title", "description"} {
		if _, ok := r.PostForm[key]; !ok {
			return nil, fmt.Errorf("missing field: %s", key)
		}
	}

	form := &projectForm{
		fields: models.ProjectFields{
			Title:       r.PostFormValue("title"),
			WebsiteURL:  r.PostFormValue("website_url"),
			GitHubURL:   r.PostFormValue("github_url"),
			Description: r.PostFormValue("description"),
		},
		image: services.ImageSource{URL: r.PostFormValue("image_url")},
		close: func() {},
	}

	file, header, err := r.FormFile("image_file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, fmt.Errorf("invalid image_file: %w", err)
	default:
		form.image.Upload = &services.Upload{Filename: header.Filename, Content: file}
		form.close = func() { file.Close() }
	}

	return form, nil
}
