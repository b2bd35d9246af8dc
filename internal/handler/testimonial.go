package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type testimonialStore interface {
	List(ctx context.Context, filter store.TestimonialFilter) ([]model.Testimonial, error)
	Get(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, t *model.Testimonial) error
	Approve(ctx context.Context, id string) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

// TestimonialHandler serves client testimonials. Public reads only see
// approved entries; moderation happens behind the admin routes.
type TestimonialHandler struct {
	BaseHandler
	testimonials testimonialStore
}

func NewTestimonialHandler(logger *slog.Logger, testimonials testimonialStore) *TestimonialHandler {
	return &TestimonialHandler{BaseHandler: BaseHandler{Logger: logger}, testimonials: testimonials}
}

type testimonialRequest struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Review      string `json:"review"`
	Rating      int    `json:"rating"`
	Avatar      string `json:"avatar"`
	ServiceUsed string `json:"serviceUsed"`
	Approved    bool   `json:"approved"`
	Featured    bool   `json:"featured"`
}

func (req *testimonialRequest) validate() []FieldError {
	var fieldErrors []FieldError
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors = append(fieldErrors, FieldError{"name", "Name is required"})
	}
	if strings.TrimSpace(req.Review) == "" {
		fieldErrors = append(fieldErrors, FieldError{"review", "Review is required"})
	} else if len(req.Review) > 500 {
		fieldErrors = append(fieldErrors, FieldError{"review", "Review must be at most 500 characters"})
	}
	if req.Rating != 0 && (req.Rating < 1 || req.Rating > 5) {
		fieldErrors = append(fieldErrors, FieldError{"rating", "Rating must be between 1 and 5"})
	}
	return fieldErrors
}

func (req *testimonialRequest) toModel(id string) *model.Testimonial {
	avatar := strings.TrimSpace(req.Avatar)
	if avatar == "" {
		avatar = model.DefaultAvatarURL
	}
	rating := req.Rating
	if rating == 0 {
		rating = 5
	}
	return &model.Testimonial{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Position:    strings.TrimSpace(req.Position),
		Company:     strings.TrimSpace(req.Company),
		Review:      req.Review,
		Rating:      rating,
		Avatar:      avatar,
		ServiceUsed: strings.TrimSpace(req.ServiceUsed),
		Approved:    req.Approved,
		Featured:    req.Featured,
	}
}

// List returns approved testimonials, optionally only featured ones.
func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.TestimonialFilter{
		ApprovedOnly: true,
		Featured:     r.URL.Query().Get("featured") == "true",
	}

	testimonials, err := h.testimonials.List(r.Context(), filter)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(testimonials),
		"data":    testimonials,
	}, nil)
}

func (h *TestimonialHandler) Get(w http.ResponseWriter, r *http.Request) {
	testimonial, err := h.testimonials.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Testimonial not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": testimonial}, nil)
}

// ListAll returns every testimonial, approved or not. Admin-only route.
func (h *TestimonialHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.List(r.Context(), store.TestimonialFilter{})
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(testimonials),
		"data":    testimonials,
	}, nil)
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	testimonial := req.toModel(auth.NewID())
	if err := h.testimonials.Create(r.Context(), testimonial); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Testimonial created successfully",
		"data":    testimonial,
	}, nil)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	testimonial := req.toModel(chi.URLParam(r, "id"))
	if err := h.testimonials.Update(r.Context(), testimonial); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Testimonial not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Testimonial updated successfully",
		"data":    testimonial,
	}, nil)
}

// Approve marks a testimonial for public display.
func (h *TestimonialHandler) Approve(w http.ResponseWriter, r *http.Request) {
	testimonial, err := h.testimonials.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Testimonial not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Testimonial approved successfully",
		"data":    testimonial,
	}, nil)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Testimonial not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Testimonial deleted successfully",
	}, nil)
}
