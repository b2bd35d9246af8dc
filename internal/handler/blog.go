package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type blogStore interface {
	List(ctx context.Context, filter store.BlogFilter) ([]model.Blog, error)
	Get(ctx context.Context, id string) (*model.Blog, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error)
	Create(ctx context.Context, b *model.Blog) error
	Update(ctx context.Context, b *model.Blog) error
	Delete(ctx context.Context, id string) error
}

// BlogHandler serves the blog resource. Public reads only see published
// posts; reads by ID are admin-only (drafts included).
type BlogHandler struct {
	BaseHandler
	blogs blogStore
}

func NewBlogHandler(logger *slog.Logger, blogs blogStore) *BlogHandler {
	return &BlogHandler{BaseHandler: BaseHandler{Logger: logger}, blogs: blogs}
}

type blogRequest struct {
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Author        string             `json:"author"`
	Content       string             `json:"content"`
	Excerpt       string             `json:"excerpt"`
	FeaturedImage string             `json:"featuredImage"`
	Tags          []string           `json:"tags"`
	Category      model.BlogCategory `json:"category"`
	Published     bool               `json:"published"`
	ReadTime      int                `json:"readTime"`
	SEO           model.SEO          `json:"seo"`
}

func (req *blogRequest) validate() []FieldError {
	var fieldErrors []FieldError
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors = append(fieldErrors, FieldError{"title", "Title is required"})
	}
	if strings.TrimSpace(req.Author) == "" {
		fieldErrors = append(fieldErrors, FieldError{"author", "Author name is required"})
	}
	if strings.TrimSpace(req.Content) == "" {
		fieldErrors = append(fieldErrors, FieldError{"content", "Content is required"})
	}
	if strings.TrimSpace(req.Excerpt) == "" {
		fieldErrors = append(fieldErrors, FieldError{"excerpt", "Excerpt is required"})
	} else if len(req.Excerpt) > 200 {
		fieldErrors = append(fieldErrors, FieldError{"excerpt", "Excerpt must be at most 200 characters"})
	}
	if strings.TrimSpace(req.FeaturedImage) == "" {
		fieldErrors = append(fieldErrors, FieldError{"featuredImage", "Featured image is required"})
	}
	if !model.ValidBlogCategory(req.Category) {
		fieldErrors = append(fieldErrors, FieldError{"category", "Invalid category"})
	}
	return fieldErrors
}

func (req *blogRequest) toModel(id string) *model.Blog {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		slug = model.Slugify(req.Title)
	}
	readTime := req.ReadTime
	if readTime <= 0 {
		readTime = 5
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &model.Blog{
		ID:            id,
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Author:        strings.TrimSpace(req.Author),
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Tags:          tags,
		Category:      req.Category,
		Published:     req.Published,
		ReadTime:      readTime,
		SEO:           req.SEO,
	}
}

// List returns published posts, optionally filtered by category and tag.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.BlogFilter{
		Category:      model.BlogCategory(q.Get("category")),
		Tag:           q.Get("tag"),
		PublishedOnly: true,
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	blogs, err := h.blogs.List(r.Context(), filter)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(blogs),
		"data":    blogs,
	}, nil)
}

// GetBySlug returns a published post by slug and counts the view.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Blog post not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": blog}, nil)
}

// Get returns a post by ID, drafts included. Admin-only route.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Blog post not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": blog}, nil)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	blog := req.toModel(auth.NewID())
	if err := h.blogs.Create(r.Context(), blog); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.errorResponse(w, r, http.StatusBadRequest, "Blog with this slug already exists")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Blog post created successfully",
		"data":    blog,
	}, nil)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	blog := req.toModel(chi.URLParam(r, "id"))
	if err := h.blogs.Update(r.Context(), blog); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.notFoundResponse(w, r, "Blog post not found")
		case errors.Is(err, store.ErrDuplicate):
			h.errorResponse(w, r, http.StatusBadRequest, "Blog with this slug already exists")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Blog post updated successfully",
		"data":    blog,
	}, nil)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Blog post not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Blog post deleted successfully",
	}, nil)
}
