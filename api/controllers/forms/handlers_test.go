package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/localarthub-backend/api/middleware"
	formsvc "github.com/angelmondragon/localarthub-backend/internal/forms"
	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/types"
)

type stubFormService struct {
	visitor string
	email   string
	contact formsvc.ContactInput
	err     error
}

func (s *stubFormService) Subscribe(ctx context.Context, visitorID, email string) (*formsvc.SubscribeResult, error) {
	s.visitor = visitorID
	s.email = email
	if s.err != nil {
		return nil, s.err
	}
	return &formsvc.SubscribeResult{
		Notification: types.FormNotice(enums.NotificationTypeSuccess, "Successfully subscribed to newsletter!"),
		ClearInput:   true,
	}, nil
}

func (s *stubFormService) SubmitContact(ctx context.Context, visitorID string, input formsvc.ContactInput) (*formsvc.ContactResult, error) {
	s.visitor = visitorID
	s.contact = input
	if s.err != nil {
		return nil, s.err
	}
	return &formsvc.ContactResult{
		Notification: types.FormNotice(enums.NotificationTypeSuccess, "Message sent successfully! We will get back to you soon."),
		ResetForm:    true,
	}, nil
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = req.WithContext(middleware.WithVisitorID(req.Context(), "visitor-1"))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestNewsletterSubscribePassesVisitorAndEmail(t *testing.T) {
	svc := &stubFormService{}
	resp := post(NewsletterSubscribe(svc, nil), `{"email":"ana@studio.art"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.visitor != "visitor-1" || svc.email != "ana@studio.art" {
		t.Fatalf("unexpected call: %+v", svc)
	}

	var envelope struct {
		Data formsvc.SubscribeResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.ClearInput || envelope.Data.Notification.DurationMS != 4000 {
		t.Fatalf("unexpected result: %+v", envelope.Data)
	}
}

func TestNewsletterValidationCarriesFormNotification(t *testing.T) {
	svc := &stubFormService{err: pkgerrors.Validation("Please enter a valid email address", "email")}
	resp := post(NewsletterSubscribe(svc, nil), `{"email":"nope"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	n := envelope.Error.Notification
	if n == nil || n.Channel != enums.NotificationChannelForm || n.Message != "Please enter a valid email address" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestContactSubmitMapsPayload(t *testing.T) {
	svc := &stubFormService{}
	resp := post(ContactSubmit(svc, nil), `{"name":"Ana","email":"ana@studio.art","subject":"Hi","message":"Hello there friend"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.contact.Name != "Ana" || svc.contact.Subject != "Hi" || svc.contact.Message != "Hello there friend" {
		t.Fatalf("unexpected input: %+v", svc.contact)
	}
}

func TestContactSubmitRejectsUnknownFields(t *testing.T) {
	svc := &stubFormService{}
	resp := post(ContactSubmit(svc, nil), `{"name":"Ana","phone":"123"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.visitor != "" {
		t.Fatalf("service should not be called")
	}
}

func TestContactSubmitStorageFailure(t *testing.T) {
	svc := &stubFormService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("redis down"), "save contact messages")}
	resp := post(ContactSubmit(svc, nil), `{"name":"Ana","email":"ana@studio.art","subject":"Hi","message":"Hello there friend"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
