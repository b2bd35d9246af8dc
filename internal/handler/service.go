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

type serviceStore interface {
	List(ctx context.Context) ([]model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	Create(ctx context.Context, sv *model.Service) error
	Update(ctx context.Context, sv *model.Service) error
	Delete(ctx context.Context, id string) error
}

// ServiceHandler serves the offered-services resource.
type ServiceHandler struct {
	BaseHandler
	services serviceStore
}

func NewServiceHandler(logger *slog.Logger, services serviceStore) *ServiceHandler {
	return &ServiceHandler{BaseHandler: BaseHandler{Logger: logger}, services: services}
}

type serviceRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Image       string        `json:"image"`
	Features    []string      `json:"features"`
	Pricing     model.Pricing `json:"pricing"`
	// Pointer so an omitted field defaults to available.
	BookingAvailable *bool `json:"bookingAvailable"`
	Popular          bool  `json:"popular"`
	Order            int   `json:"order"`
}

func (req *serviceRequest) validate() []FieldError {
	var fieldErrors []FieldError
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors = append(fieldErrors, FieldError{"title", "Title is required"})
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors = append(fieldErrors, FieldError{"description", "Description is required"})
	}
	if strings.TrimSpace(req.Icon) == "" {
		fieldErrors = append(fieldErrors, FieldError{"icon", "Icon is required"})
	}
	if req.Pricing.PricingModel != "" && !model.ValidPricingModel(req.Pricing.PricingModel) {
		fieldErrors = append(fieldErrors, FieldError{"pricing.pricingModel", "Invalid pricing model"})
	}
	return fieldErrors
}

func (req *serviceRequest) toModel(id string) *model.Service {
	pricing := req.Pricing
	if pricing.Currency == "" {
		pricing.Currency = "ZMW"
	}
	if pricing.PricingModel == "" {
		pricing.PricingModel = model.PricingCustom
	}
	features := req.Features
	if features == nil {
		features = []string{}
	}
	booking := true
	if req.BookingAvailable != nil {
		booking = *req.BookingAvailable
	}
	return &model.Service{
		ID:               id,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Icon:             strings.TrimSpace(req.Icon),
		Image:            strings.TrimSpace(req.Image),
		Features:         features,
		Pricing:          pricing,
		BookingAvailable: booking,
		Popular:          req.Popular,
		Order:            req.Order,
	}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(services),
		"data":    services,
	}, nil)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	service, err := h.services.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Service not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": service}, nil)
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	service := req.toModel(auth.NewID())
	if err := h.services.Create(r.Context(), service); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Service created successfully",
		"data":    service,
	}, nil)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	service := req.toModel(chi.URLParam(r, "id"))
	if err := h.services.Update(r.Context(), service); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Service not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Service updated successfully",
		"data":    service,
	}, nil)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Service not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Service deleted successfully",
	}, nil)
}
