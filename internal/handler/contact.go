package handler

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/mailer"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type contactStore interface {
	List(ctx context.Context, filter store.ContactFilter) ([]model.Contact, error)
	Get(ctx context.Context, id string) (*model.Contact, error)
	Create(ctx context.Context, c *model.Contact) error
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.Contact, error)
	Delete(ctx context.Context, id string) error
}

type newsletterStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	Create(ctx context.Context, sub *model.Subscriber) error
	Resubscribe(ctx context.Context, id string) (*model.Subscriber, error)
	ListSubscribed(ctx context.Context) ([]model.Subscriber, error)
}

type contactMailer interface {
	ContactNotification(c *model.Contact) mailer.Message
	ContactAutoReply(c *model.Contact) mailer.Message
	NewsletterWelcome(email, name string) mailer.Message
}

type mailEnqueuer interface {
	Enqueue(msg mailer.Message) error
}

// ContactHandler serves the public contact form, newsletter signups and the
// admin inbox. Mail goes out through the queue so a slow relay never delays
// the HTTP response.
type ContactHandler struct {
	BaseHandler
	contacts    contactStore
	subscribers newsletterStore
	mail        contactMailer
	queue       mailEnqueuer
}

func NewContactHandler(logger *slog.Logger, contacts contactStore, subscribers newsletterStore, mail contactMailer, queue mailEnqueuer) *ContactHandler {
	return &ContactHandler{
		BaseHandler: BaseHandler{Logger: logger},
		contacts:    contacts,
		subscribers: subscribers,
		mail:        mail,
		queue:       queue,
	}
}

type contactRequest struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Subject         string                `json:"subject"`
	Message         string                `json:"message"`
	ServiceInterest model.ServiceInterest `json:"serviceInterest"`
}

func (req *contactRequest) validate() []FieldError {
	var fieldErrors []FieldError
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors = append(fieldErrors, FieldError{"name", "Name is required"})
	}
	if !model.ValidEmail(strings.TrimSpace(req.Email)) {
		fieldErrors = append(fieldErrors, FieldError{"email", "Valid email is required"})
	}
	if strings.TrimSpace(req.Subject) == "" {
		fieldErrors = append(fieldErrors, FieldError{"subject", "Subject is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors = append(fieldErrors, FieldError{"message", "Message is required"})
	} else if len(req.Message) > 2000 {
		fieldErrors = append(fieldErrors, FieldError{"message", "Message must be at most 2000 characters"})
	}
	if req.ServiceInterest != "" && !model.ValidServiceInterest(req.ServiceInterest) {
		fieldErrors = append(fieldErrors, FieldError{"serviceInterest", "Invalid service interest"})
	}
	return fieldErrors
}

// clientIP extracts the remote address without the port. RealIP middleware
// has already resolved X-Forwarded-For upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Submit accepts a contact form submission and queues the owner notification
// and the auto-reply.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	contact := &model.Contact{
		ID:              auth.NewID(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		Subject:         strings.TrimSpace(req.Subject),
		Message:         req.Message,
		ServiceInterest: req.ServiceInterest,
		Status:          model.ContactNew,
		IPAddress:       clientIP(r),
		UserAgent:       r.UserAgent(),
	}

	if err := h.contacts.Create(r.Context(), contact); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.queue.Enqueue(h.mail.ContactNotification(contact)); err != nil {
		h.Logger.Error("contact: notification not queued", "err", err, "contact_id", contact.ID)
	}
	if err := h.queue.Enqueue(h.mail.ContactAutoReply(contact)); err != nil {
		h.Logger.Error("contact: auto-reply not queued", "err", err, "contact_id", contact.ID)
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Thank you for contacting us! We will get back to you soon.",
		"data":    envelope{"id": contact.ID},
	}, nil)
}

// List returns contact submissions, optionally filtered by status.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ContactFilter{Status: model.ContactStatus(q.Get("status"))}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	contacts, err := h.contacts.List(r.Context(), filter)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	}, nil)
}

// Get returns a single submission and marks new messages as read.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Contact message not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	if contact.Status == model.ContactNew {
		updated, err := h.contacts.UpdateStatus(r.Context(), contact.ID, model.ContactRead)
		if err != nil {
			h.Logger.Error("contact: failed to mark as read", "err", err, "contact_id", contact.ID)
		} else {
			contact = updated
		}
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": contact}, nil)
}

type statusRequest struct {
	Status model.ContactStatus `json:"status"`
}

func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !model.ValidContactStatus(req.Status) {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid status")
		return
	}

	contact, err := h.contacts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Contact message not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Status updated successfully",
		"data":    contact,
	}, nil)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, "Contact message not found")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Contact message deleted successfully",
	}, nil)
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe adds an address to the newsletter list. A previously
// unsubscribed address is reactivated rather than rejected.
func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !model.ValidEmail(req.Email) {
		h.validationResponse(w, r, []FieldError{{"email", "Valid email is required"}})
		return
	}

	existing, err := h.subscribers.GetByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		if existing.Subscribed {
			h.errorResponse(w, r, http.StatusBadRequest, "Email already subscribed")
			return
		}
		if _, err := h.subscribers.Resubscribe(r.Context(), existing.ID); err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
	case errors.Is(err, store.ErrNotFound):
		sub := &model.Subscriber{
			ID:    auth.NewID(),
			Email: req.Email,
			Name:  strings.TrimSpace(req.Name),
		}
		if err := h.subscribers.Create(r.Context(), sub); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				h.errorResponse(w, r, http.StatusBadRequest, "Email already subscribed")
				return
			}
			h.serverErrorResponse(w, r, err)
			return
		}
	default:
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.queue.Enqueue(h.mail.NewsletterWelcome(req.Email, strings.TrimSpace(req.Name))); err != nil {
		h.Logger.Error("newsletter: welcome not queued", "err", err, "email", req.Email)
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Successfully subscribed to newsletter!",
	}, nil)
}

// Subscribers returns all active newsletter subscribers. Admin-only route.
func (h *ContactHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.ListSubscribed(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(subs),
		"data":    subs,
	}, nil)
}
