package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type projectStore interface {
	List(ctx context.Context, filter store.ProjectFilter) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
}

// ProjectHandler serves the portfolio projects resource.
type ProjectHandler struct {
	BaseHandler
	projects projectStore
}

func NewProjectHandler(logger *slog.Logger, projects projectStore) *ProjectHandler {
	return &ProjectHandler{BaseHandler: BaseHandler{Logger: logger}, projects: projects}
}

type projectRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	ImageURL       string                `json:"imageURL"`
	Category       model.ProjectCategory `json:"category"`
	TechStack      []string              `json:"techStack"`
	ProjectLink    string                `json:"projectLink"`
	GithubLink     string                `json:"githubLink"`
	Featured       bool                  `json:"featured"`
	CompletionDate *time.Time            `json:"completionDate"`
	Client         string                `json:"client"`
	Status         model.ProjectStatus   `json:"status"`
}

func (req *projectRequest) validate() []FieldError {
	var fieldErrors []FieldError
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors = append(fieldErrors, FieldError{"title", "Title is required"})
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors = append(fieldErrors, FieldError{"description", "Description is required"})
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		fieldErrors = append(fieldErrors, FieldError{"imageURL", "Image URL is required"})
	}
	if !model.ValidProjectCategory(req.Category) {
		fieldErrors = append(fieldErrors, FieldError{"category", "Invalid category"})
	}
	if req.Status != "" && !model.ValidProjectStatus(req.Status) {
		fieldErrors = append(fieldErrors, FieldError{"status", "Invalid status"})
	}
	return fieldErrors
}

func (req *projectRequest) toModel(id string) *model.Project {
	status := req.Status
	if status == "" {
		status = model.ProjectCompleted
	}
	techStack := req.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	return &model.Project{
		ID:             id,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		Category:       req.Category,
		TechStack:      techStack,
		ProjectLink:    strings.TrimSpace(req.ProjectLink),
		GithubLink:     strings.TrimSpace(req.GithubLink),
		Featured:       req.Featured,
		CompletionDate: req.CompletionDate,
		Client:         strings.TrimSpace(req.Client),
		Status:         status,
	}
}

// List returns projects, optionally filtered by category and featured flag.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProjectFilter{
		Category: model.ProjectCategory(q.Get("category")),
		Featured: q.Get("featured") == "true",
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	projects, err := h.projects.List(r.Context(), filter)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(projects),
		"data":    projects,
	}, nil)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Project not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": project}, nil)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	project := req.toModel(auth.NewID())
	if err := h.projects.Create(r.Context(), project); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Project created successfully",
		"data":    project,
	}, nil)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	project := req.toModel(chi.URLParam(r, "id"))
	if err := h.projects.Update(r.Context(), project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Project not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Project updated successfully",
		"data":    project,
	}, nil)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Project not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Project deleted successfully",
	}, nil)
}
