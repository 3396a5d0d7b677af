package forms

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/localstore"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

const visitor = "visitor-1"

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.FixedZone("PKT", 5*3600))

func newTestService(t *testing.T, store localstore.Store) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:  store,
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func TestEmailRule(t *testing.T) {
	t.Parallel()

	v := validator.New()
	require.NoError(t, RegisterEmailValidation(v))

	valid := []string{"a@b.co", "first.last@studio.art", "x@y.z.w"}
	invalid := []string{
		"", "plain", "a@b", "a b@c.d", "@b.co", "a@.co@x", "a@b.",
		"a@@b.com", "a @b.com",
		// Browser whitespace beyond ASCII.
		"a\vb@c.co", "a\u00a0b@c.co", "a@b\u2028x.co", "a@b.c\ufeffo", "a\u3000b@c.co", "a@b\u2009c.co",
	}
	for _, email := range valid {
		assert.NoError(t, v.Var(email, EmailTag), email)
	}
	for _, email := range invalid {
		assert.Error(t, v.Var(email, EmailTag), email)
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	svc := newTestService(t, store)

	_, err := svc.Subscribe(ctx, visitor, "not-an-email")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Please enter a valid email address", typed.Message())
	assert.Equal(t, map[string]any{"field": "email", "focus": true}, typed.Details())

	res, err := svc.Subscribe(ctx, visitor, "  ana@studio.art ")
	require.NoError(t, err)
	assert.Equal(t, "Successfully subscribed to newsletter!", res.Notification.Message)
	assert.Equal(t, enums.NotificationTypeSuccess, res.Notification.Type)
	assert.Equal(t, int64(4000), res.Notification.DurationMS)
	assert.True(t, res.ClearInput)

	res, err = svc.Subscribe(ctx, visitor, "ana@studio.art")
	require.NoError(t, err)
	assert.Equal(t, "You are already subscribed!", res.Notification.Message)
	assert.Equal(t, enums.NotificationTypeInfo, res.Notification.Type)
	assert.False(t, res.ClearInput)

	_, err = svc.Subscribe(ctx, visitor, "ANA@studio.art")
	require.NoError(t, err)

	raw, _, _ := store.Get(ctx, visitor, localstore.KeyNewsletterSubscribers)
	assert.Equal(t, `["ana@studio.art","ANA@studio.art"]`, raw)
}

func TestSubscribeTrimsBrowserWhitespace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	svc := newTestService(t, store)

	res, err := svc.Subscribe(ctx, visitor, "\ufeff\u00a0ana@studio.art\u2028")
	require.NoError(t, err)
	assert.True(t, res.ClearInput)

	_, err = svc.Subscribe(ctx, visitor, "ana\u00a0@studio.art")
	assert.Error(t, err)

	raw, _, _ := store.Get(ctx, visitor, localstore.KeyNewsletterSubscribers)
	assert.Equal(t, `["ana@studio.art"]`, raw)
}

func TestSubscribeRecoversFromCorruptList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, visitor, localstore.KeyNewsletterSubscribers, "{oops"))
	svc := newTestService(t, store)

	_, err := svc.Subscribe(ctx, visitor, "ana@studio.art")
	require.NoError(t, err)
	raw, _, _ := store.Get(ctx, visitor, localstore.KeyNewsletterSubscribers)
	assert.Equal(t, `["ana@studio.art"]`, raw)
}

func TestSubmitContactValidationOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t, localstore.NewMemoryStore())

	cases := []struct {
		name  string
		input ContactInput
		want  string
		field string
	}{
		{"everything empty", ContactInput{}, "Please enter your name", "name"},
		{"bad email", ContactInput{Name: "Ana", Email: "nope"}, "Please enter a valid email address", "email"},
		{"blank subject", ContactInput{Name: "Ana", Email: "ana@studio.art", Subject: "   "}, "Please enter a subject", "subject"},
		{"short message", ContactInput{Name: "Ana", Email: "ana@studio.art", Subject: "Hi", Message: "  too short "}, "Please enter a message (at least 10 characters)", "message"},
	}
	for _, tc := range cases {
		_, err := svc.SubmitContact(ctx, visitor, tc.input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, tc.name)
		assert.Equal(t, tc.want, typed.Message(), tc.name)
		assert.Equal(t, map[string]any{"field": tc.field}, typed.Details(), tc.name)
	}
}

func TestSubmitContactStoresMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	svc := newTestService(t, store)

	res, err := svc.SubmitContact(ctx, visitor, ContactInput{
		Name:    " Ana ",
		Email:   "ana@studio.art",
		Subject: "Commission",
		Message: "I would like a painting.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully! We will get back to you soon.", res.Notification.Message)
	assert.True(t, res.ResetForm)

	raw, found, _ := store.Get(ctx, visitor, localstore.KeyContactMessages)
	require.True(t, found)
	want := `[{"name":"Ana","email":"ana@studio.art","subject":"Commission","message":"I would like a painting.","date":"2026-10-19T05:00:00.000Z"}]`
	assert.Equal(t, want, raw)
}

func TestSubmitContactKeepsExistingRecordFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	existing := `[{"name":"Bo","email":"bo@x.io","subject":"Hi","message":"earlier note","date":"2026-01-01T00:00:00.000Z","phone":"0300"}]`
	require.NoError(t, store.Set(ctx, visitor, localstore.KeyContactMessages, existing))
	svc := newTestService(t, store)

	_, err := svc.SubmitContact(ctx, visitor, ContactInput{
		Name: "Ana", Email: "ana@studio.art", Subject: "Commission", Message: "I would like a painting.",
	})
	require.NoError(t, err)

	raw, _, _ := store.Get(ctx, visitor, localstore.KeyContactMessages)
	want := `[{"name":"Bo","email":"bo@x.io","subject":"Hi","message":"earlier note","date":"2026-01-01T00:00:00.000Z","phone":"0300"},` +
		`{"name":"Ana","email":"ana@studio.art","subject":"Commission","message":"I would like a painting.","date":"2026-10-19T05:00:00.000Z"}]`
	assert.Equal(t, want, raw)
}

func TestMessageLengthCountsUTF16Units(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, localstore.NewMemoryStore())

	// Five emoji are ten UTF-16 units.
	_, err := svc.SubmitContact(context.Background(), visitor, ContactInput{
		Name: "Ana", Email: "ana@studio.art", Subject: "Hi", Message: "🎨🎨🎨🎨🎨",
	})
	assert.NoError(t, err)
}

func TestNewServiceRequiresStore(t *testing.T) {
	t.Parallel()
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
