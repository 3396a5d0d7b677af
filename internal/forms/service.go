package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
	"github.com/angelmondragon/localarthub-backend/pkg/metrics"
	"github.com/angelmondragon/localarthub-backend/pkg/types"
)

const (
	minMessageLength = 10
	// dateLayout matches the ISO strings browsers produce for stored messages.
	dateLayout = "2006-01-02T15:04:05.000Z"

	msgInvalidEmail      = "Please enter a valid email address"
	msgAlreadySubscribed = "You are already subscribed!"
	msgSubscribed        = "Successfully subscribed to newsletter!"
	msgNameRequired      = "Please enter your name"
	msgSubjectRequired   = "Please enter a subject"
	msgMessageTooShort   = "Please enter a message (at least 10 characters)"
	msgContactSent       = "Message sent successfully! We will get back to you soon."
)

// Service handles the newsletter and contact forms.
type Service interface {
	Subscribe(ctx context.Context, visitorID, email string) (*SubscribeResult, error)
	SubmitContact(ctx context.Context, visitorID string, input ContactInput) (*ContactResult, error)
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactMessage is one stored contact form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// SubscribeResult tells the page what to show and whether to clear the input.
type SubscribeResult struct {
	Notification *types.Notification `json:"notification"`
	ClearInput   bool                `json:"clear_input"`
}

type ContactResult struct {
	Notification *types.Notification `json:"notification"`
	ResetForm    bool                `json:"reset_form"`
}

type ServiceParams struct {
	Store   localstore.Store
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
	// Now defaults to time.Now.
	Now func() time.Time
}

type service struct {
	store    localstore.Store
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time
	validate *validator.Validate
}

// NewService builds the form service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("local store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:    params.Store,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      now,
		validate: newValidator(),
	}, nil
}

func (s *service) validEmail(email string) bool {
	return s.validate.Var(email, EmailTag) == nil
}

// Subscribe adds a trimmed email to the subscriber list. A repeat of an exact
// address is reported as info and leaves the list alone.
func (s *service) Subscribe(ctx context.Context, visitorID, email string) (*SubscribeResult, error) {
	ctx = s.logg.WithOperation(ctx, "forms.newsletter")
	email = trimInput(email)
	if !s.validEmail(email) {
		s.metrics.IncForm("newsletter", "invalid")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidEmail).
			WithDetails(map[string]any{"field": "email", "focus": true})
	}

	var subscribers []string
	if err := s.loadList(ctx, visitorID, localstore.KeyNewsletterSubscribers, &subscribers); err != nil {
		return nil, err
	}
	for _, existing := range subscribers {
		if existing == email {
			s.metrics.IncForm("newsletter", "duplicate")
			s.logg.Info(ctx, "newsletter address already subscribed")
			return &SubscribeResult{
				Notification: types.FormNotice(enums.NotificationTypeInfo, msgAlreadySubscribed),
			}, nil
		}
	}

	subscribers = append(subscribers, email)
	if err := localstore.SaveJSON(ctx, s.store, visitorID, localstore.KeyNewsletterSubscribers, subscribers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save subscribers")
	}
	s.metrics.IncForm("newsletter", "subscribed")
	s.logg.Info(ctx, "newsletter subscription stored")
	return &SubscribeResult{
		Notification: types.FormNotice(enums.NotificationTypeSuccess, msgSubscribed),
		ClearInput:   true,
	}, nil
}

// SubmitContact validates the fields in page order and stops at the first
// failure.
func (s *service) SubmitContact(ctx context.Context, visitorID string, input ContactInput) (*ContactResult, error) {
	ctx = s.logg.WithOperation(ctx, "forms.contact")
	msg := ContactMessage{
		Name:    trimInput(input.Name),
		Email:   trimInput(input.Email),
		Subject: trimInput(input.Subject),
		Message: trimInput(input.Message),
	}

	if err := s.checkContact(msg); err != nil {
		s.metrics.IncForm("contact", "invalid")
		return nil, err
	}

	// Earlier records are kept as raw JSON so fields this service does not
	// know about survive the rewrite.
	var messages []json.RawMessage
	if err := s.loadList(ctx, visitorID, localstore.KeyContactMessages, &messages); err != nil {
		return nil, err
	}
	msg.Date = s.now().UTC().Format(dateLayout)
	encoded, err := json.Marshal(msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode contact message")
	}
	messages = append(messages, encoded)
	if err := localstore.SaveJSON(ctx, s.store, visitorID, localstore.KeyContactMessages, messages); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contact message")
	}

	s.metrics.IncForm("contact", "sent")
	s.logg.Info(ctx, "contact message stored")
	return &ContactResult{
		Notification: types.FormNotice(enums.NotificationTypeSuccess, msgContactSent),
		ResetForm:    true,
	}, nil
}

func (s *service) checkContact(msg ContactMessage) error {
	if msg.Name == "" {
		return pkgerrors.Validation(msgNameRequired, "name")
	}
	if !s.validEmail(msg.Email) {
		return pkgerrors.Validation(msgInvalidEmail, "email")
	}
	if msg.Subject == "" {
		return pkgerrors.Validation(msgSubjectRequired, "subject")
	}
	// Length is counted in UTF-16 units, as the page's script does.
	if len(utf16.Encode([]rune(msg.Message))) < minMessageLength {
		return pkgerrors.Validation(msgMessageTooShort, "message")
	}
	return nil
}

// loadList reads a stored JSON array; unreadable data starts a fresh list.
func (s *service) loadList(ctx context.Context, visitorID, key string, dest any) error {
	if visitorID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	status, err := localstore.LoadJSON(ctx, s.store, visitorID, key, dest)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+key)
	}
	if status == localstore.LoadStatusCorrupt {
		s.metrics.IncFallback(key)
		s.logg.Warn(ctx, "stored form data unreadable; starting a new list")
	}
	return nil
}
