package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hlstech/website/internal/mailer"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type fakeContactStore struct {
	contacts map[string]*model.Contact
	created  []*model.Contact
	statuses map[string]model.ContactStatus
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{
		contacts: map[string]*model.Contact{},
		statuses: map[string]model.ContactStatus{},
	}
}

func (f *fakeContactStore) List(_ context.Context, _ store.ContactFilter) ([]model.Contact, error) {
	out := []model.Contact{}
	for _, c := range f.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeContactStore) Get(_ context.Context, id string) (*model.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContactStore) Create(_ context.Context, c *model.Contact) error {
	f.contacts[c.ID] = c
	f.created = append(f.created, c)
	return nil
}

func (f *fakeContactStore) UpdateStatus(_ context.Context, id string, status model.ContactStatus) (*model.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Status = status
	f.statuses[id] = status
	cp := *c
	return &cp, nil
}

func (f *fakeContactStore) Delete(_ context.Context, id string) error {
	if _, ok := f.contacts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.contacts, id)
	return nil
}

type fakeSubscriberStore struct {
	byEmail      map[string]*model.Subscriber
	resubscribed []string
}

func newFakeSubscriberStore() *fakeSubscriberStore {
	return &fakeSubscriberStore{byEmail: map[string]*model.Subscriber{}}
}

func (f *fakeSubscriberStore) GetByEmail(_ context.Context, email string) (*model.Subscriber, error) {
	sub, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return sub, nil
}

func (f *fakeSubscriberStore) Create(_ context.Context, sub *model.Subscriber) error {
	if _, ok := f.byEmail[sub.Email]; ok {
		return store.ErrDuplicate
	}
	sub.Subscribed = true
	f.byEmail[sub.Email] = sub
	return nil
}

func (f *fakeSubscriberStore) Resubscribe(_ context.Context, id string) (*model.Subscriber, error) {
	for _, sub := range f.byEmail {
		if sub.ID == id {
			sub.Subscribed = true
			f.resubscribed = append(f.resubscribed, id)
			return sub, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeSubscriberStore) ListSubscribed(_ context.Context) ([]model.Subscriber, error) {
	out := []model.Subscriber{}
	for _, sub := range f.byEmail {
		if sub.Subscribed {
			out = append(out, *sub)
		}
	}
	return out, nil
}

type fakeQueue struct {
	enqueued []mailer.Message
	err      error
}

func (f *fakeQueue) Enqueue(msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, msg)
	return nil
}

func newContactTestHandler() (*ContactHandler, *fakeContactStore, *fakeSubscriberStore, *fakeQueue) {
	contacts := newFakeContactStore()
	subs := newFakeSubscriberStore()
	queue := &fakeQueue{}
	m := mailer.New(&mailer.Config{
		FromName:    "HLS Tech",
		FromEmail:   "noreply@hlstech.example",
		NotifyEmail: "owner@hlstech.example",
	})
	h := NewContactHandler(discardLogger(), contacts, subs, m, queue)
	return h, contacts, subs, queue
}

func TestContactSubmit(t *testing.T) {
	h, contacts, _, queue := newContactTestHandler()

	body := `{"name":"Ada","email":"ADA@Example.com","subject":"Laptop repair","message":"My screen is cracked.","serviceInterest":"Hardware Repair"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:51234"
	req.Header.Set("User-Agent", "test-agent/1.0")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Thank you for contacting us! We will get back to you soon.") {
		t.Errorf("body = %s", rec.Body)
	}

	if len(contacts.created) != 1 {
		t.Fatalf("created %d contacts, want 1", len(contacts.created))
	}
	c := contacts.created[0]
	if c.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", c.Email)
	}
	if c.Status != model.ContactNew {
		t.Errorf("status = %q, want New", c.Status)
	}
	if c.IPAddress != "203.0.113.9" {
		t.Errorf("ip = %q", c.IPAddress)
	}
	if c.UserAgent != "test-agent/1.0" {
		t.Errorf("user agent = %q", c.UserAgent)
	}

	if len(queue.enqueued) != 2 {
		t.Fatalf("enqueued %d messages, want 2", len(queue.enqueued))
	}
	notification, reply := queue.enqueued[0], queue.enqueued[1]
	if notification.To[0] != "owner@hlstech.example" {
		t.Errorf("notification went to %v", notification.To)
	}
	if reply.To[0] != "ada@example.com" {
		t.Errorf("auto-reply went to %v", reply.To)
	}
}

// A full mail queue must not fail the submission.
func TestContactSubmitQueueFull(t *testing.T) {
	h, contacts, _, queue := newContactTestHandler()
	queue.err = errQueueFull

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello."}`
	rec := postJSON(t, h.Submit, body)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if len(contacts.created) != 1 {
		t.Errorf("contact not stored")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	h, contacts, _, queue := newContactTestHandler()

	rec := postJSON(t, h.Submit, `{"name":"","email":"bad","subject":"","message":"","serviceInterest":"Plumbing"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Errors) != 5 {
		t.Errorf("got %d field errors, want 5: %v", len(resp.Errors), resp.Errors)
	}
	if len(contacts.created) != 0 || len(queue.enqueued) != 0 {
		t.Error("invalid submission must not store or queue anything")
	}
}

func TestContactGetMarksRead(t *testing.T) {
	h, contacts, _, _ := newContactTestHandler()
	contacts.contacts["c1"] = &model.Contact{ID: "c1", Status: model.ContactNew}

	rec := getWithParam(t, h.Get, "id", "c1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if contacts.statuses["c1"] != model.ContactRead {
		t.Errorf("status = %q, want Read", contacts.statuses["c1"])
	}
}

func TestContactUpdateStatusInvalid(t *testing.T) {
	h, contacts, _, _ := newContactTestHandler()
	contacts.contacts["c1"] = &model.Contact{ID: "c1", Status: model.ContactNew}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"Pending"}`))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, withURLParam(req, "id", "c1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid status") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestNewsletterSubscribe(t *testing.T) {
	h, _, subs, queue := newContactTestHandler()

	rec := postJSON(t, h.Subscribe, `{"email":"Reader@Example.com","name":"Reader"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Successfully subscribed to newsletter!") {
		t.Errorf("body = %s", rec.Body)
	}
	if _, ok := subs.byEmail["reader@example.com"]; !ok {
		t.Error("subscriber not stored under normalized email")
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("enqueued %d messages, want 1", len(queue.enqueued))
	}
	if queue.enqueued[0].To[0] != "reader@example.com" {
		t.Errorf("welcome went to %v", queue.enqueued[0].To)
	}
}

func TestNewsletterAlreadySubscribed(t *testing.T) {
	h, _, subs, queue := newContactTestHandler()
	subs.byEmail["reader@example.com"] = &model.Subscriber{ID: "s1", Email: "reader@example.com", Subscribed: true}

	rec := postJSON(t, h.Subscribe, `{"email":"reader@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already subscribed") {
		t.Errorf("body = %s", rec.Body)
	}
	if len(queue.enqueued) != 0 {
		t.Error("no welcome mail for an already-subscribed address")
	}
}

func TestNewsletterResubscribe(t *testing.T) {
	h, _, subs, queue := newContactTestHandler()
	subs.byEmail["reader@example.com"] = &model.Subscriber{ID: "s1", Email: "reader@example.com", Subscribed: false}

	rec := postJSON(t, h.Subscribe, `{"email":"reader@example.com"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}
	if len(subs.resubscribed) != 1 || subs.resubscribed[0] != "s1" {
		t.Errorf("resubscribed = %v, want [s1]", subs.resubscribed)
	}
	if len(queue.enqueued) != 1 {
		t.Errorf("enqueued %d messages, want 1", len(queue.enqueued))
	}
}

func TestNewsletterBadEmail(t *testing.T) {
	h, _, _, _ := newContactTestHandler()

	rec := postJSON(t, h.Subscribe, `{"email":"not-an-email"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
