package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xumalabs/notifier/notification"
	"github.com/xumalabs/notifier/pkg/email"
	"github.com/xumalabs/notifier/pkg/push"
	"github.com/xumalabs/notifier/pkg/templates"
)

type mockEmailSender struct{ mock.Mock }

func (m *mockEmailSender) Send(ctx context.Context, params email.SendParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type mockPushSender struct{ mock.Mock }

func (m *mockPushSender) Send(ctx context.Context, params push.SendParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) RenderEmailTemplate(ctx context.Context, name string, data templates.Data) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

// recordingRepo captures every Save in order so tests can assert the full
// persisted lifecycle, not just the final upserted value.
type recordingRepo struct {
	saves     []notification.Notification
	failOn    int // 1-based index of the Save call that fails; 0 means never
	saveError error
}

func (r *recordingRepo) Save(_ context.Context, n notification.Notification) error {
	if r.failOn > 0 && len(r.saves)+1 == r.failOn {
		return r.saveError
	}
	r.saves = append(r.saves, n)
	return nil
}

func (r *recordingRepo) FindByID(context.Context, uuid.UUID) (notification.Notification, error) {
	return notification.Notification{}, notification.ErrNotificationNotFound
}

func (r *recordingRepo) FindByRecipient(context.Context, string, int) ([]notification.Notification, error) {
	return nil, nil
}

func (r *recordingRepo) FindAll(context.Context, int, int) ([]notification.Notification, error) {
	return nil, nil
}

func newTestService(repo notification.Repository, es email.Sender, ps push.Sender, tr templates.Renderer) *notification.Service {
	return notification.NewService(repo, es, ps, tr,
		notification.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func TestService_SendEmail_WithTemplate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	emailSender := new(mockEmailSender)
	pushSender := new(mockPushSender)
	renderer := new(mockRenderer)

	data := templates.Data{"userName": "Ana"}
	renderer.On("RenderEmailTemplate", ctx, "welcome", data).Return("<h1>Welcome, Ana!</h1>", nil)
	emailSender.On("Send", ctx, email.SendParams{
		To:      "ana@example.com",
		Subject: "Welcome",
		HTML:    "<h1>Welcome, Ana!</h1>",
	}).Return(nil)

	svc := newTestService(repo, emailSender, pushSender, renderer)

	id, err := svc.SendEmail(ctx, notification.SendEmailParams{
		To:           "ana@example.com",
		Subject:      "Welcome",
		TemplateName: "welcome",
		TemplateData: data,
		HTMLContent:  "<p>ignored literal body</p>",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	require.Len(t, repo.saves, 2)
	pending, sent := repo.saves[0], repo.saves[1]

	assert.Equal(t, id, pending.ID)
	assert.Equal(t, id, sent.ID)
	assert.Equal(t, notification.StatusPending, pending.Status)
	assert.Equal(t, notification.StatusSent, sent.Status)

	// The rendered template wins over the literal body.
	assert.Equal(t, "<h1>Welcome, Ana!</h1>", pending.Content)
	assert.Equal(t, "<h1>Welcome, Ana!</h1>", sent.Content)
	assert.NotContains(t, sent.Content, "ignored literal body")

	assert.Nil(t, pending.SentAt)
	require.NotNil(t, sent.SentAt)
	assert.Empty(t, sent.ErrorMessage)

	renderer.AssertExpectations(t)
	emailSender.AssertExpectations(t)
}

func TestService_SendEmail_WithLiteralHTML(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	emailSender := new(mockEmailSender)
	renderer := new(mockRenderer)

	emailSender.On("Send", ctx, email.SendParams{
		To:      "a@b.com",
		Subject: "Plain",
		HTML:    "<p>Body</p>",
		Text:    "Body",
	}).Return(nil)

	svc := newTestService(repo, emailSender, new(mockPushSender), renderer)

	id, err := svc.SendEmail(ctx, notification.SendEmailParams{
		To:          "a@b.com",
		Subject:     "Plain",
		HTMLContent: "<p>Body</p>",
		TextContent: "Body",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, repo.saves, 2)
	assert.Equal(t, "<p>Body</p>", repo.saves[0].Content)

	renderer.AssertNotCalled(t, "RenderEmailTemplate", mock.Anything, mock.Anything, mock.Anything)
	emailSender.AssertExpectations(t)
}

func TestService_SendEmail_MissingContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	emailSender := new(mockEmailSender)

	svc := newTestService(repo, emailSender, new(mockPushSender), new(mockRenderer))

	t.Run("no template and no html", func(t *testing.T) {
		_, err := svc.SendEmail(ctx, notification.SendEmailParams{To: "a@b.com", Subject: "Hi"})
		assert.ErrorIs(t, err, notification.ErrMissingContent)
	})

	t.Run("template without data", func(t *testing.T) {
		_, err := svc.SendEmail(ctx, notification.SendEmailParams{
			To:           "a@b.com",
			Subject:      "Hi",
			TemplateName: "welcome",
		})
		assert.ErrorIs(t, err, notification.ErrMissingContent)
	})

	assert.Empty(t, repo.saves, "invalid requests must not reach storage")
	emailSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_SendEmail_RenderFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	renderer := new(mockRenderer)
	renderer.On("RenderEmailTemplate", ctx, "missing", mock.Anything).
		Return("", templates.ErrTemplateNotFound)

	svc := newTestService(repo, new(mockEmailSender), new(mockPushSender), renderer)

	_, err := svc.SendEmail(ctx, notification.SendEmailParams{
		To:           "a@b.com",
		Subject:      "Hi",
		TemplateName: "missing",
		TemplateData: templates.Data{},
	})
	assert.ErrorIs(t, err, templates.ErrTemplateNotFound)
	assert.Empty(t, repo.saves, "render failures happen before anything is persisted")
}

func TestService_SendEmail_ProviderFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	emailSender := new(mockEmailSender)

	sendErr := errors.Join(email.ErrSendFailed, errors.New("mailbox full"))
	emailSender.On("Send", ctx, mock.Anything).Return(sendErr)

	svc := newTestService(repo, emailSender, new(mockPushSender), new(mockRenderer))

	_, err := svc.SendEmail(ctx, notification.SendEmailParams{
		To:          "a@b.com",
		Subject:     "Hi",
		HTMLContent: "<p>Body</p>",
	})
	assert.ErrorIs(t, err, email.ErrSendFailed, "the provider error is returned unchanged")

	require.Len(t, repo.saves, 2)
	pending, failed := repo.saves[0], repo.saves[1]
	assert.Equal(t, pending.ID, failed.ID)
	assert.Equal(t, notification.StatusFailed, failed.Status)
	require.NotNil(t, failed.SentAt)
	assert.Contains(t, failed.ErrorMessage, "mailbox full")

	// The failed record carries the exact content that was attempted.
	assert.Equal(t, pending.Content, failed.Content)
	assert.Equal(t, pending.Subject, failed.Subject)
}

func TestService_SendEmail_StorageFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storageErr := errors.New("connection refused")

	t.Run("pending persist fails before dispatch", func(t *testing.T) {
		t.Parallel()

		repo := &recordingRepo{failOn: 1, saveError: storageErr}
		emailSender := new(mockEmailSender)

		svc := newTestService(repo, emailSender, new(mockPushSender), new(mockRenderer))

		_, err := svc.SendEmail(ctx, notification.SendEmailParams{
			To:          "a@b.com",
			HTMLContent: "<p>Body</p>",
		})
		assert.ErrorIs(t, err, storageErr)
		emailSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("failed persist masks the delivery error", func(t *testing.T) {
		t.Parallel()

		repo := &recordingRepo{failOn: 2, saveError: storageErr}
		emailSender := new(mockEmailSender)
		deliveryErr := errors.Join(email.ErrSendFailed, errors.New("rejected"))
		emailSender.On("Send", ctx, mock.Anything).Return(deliveryErr)

		svc := newTestService(repo, emailSender, new(mockPushSender), new(mockRenderer))

		_, err := svc.SendEmail(ctx, notification.SendEmailParams{
			To:          "a@b.com",
			HTMLContent: "<p>Body</p>",
		})
		assert.ErrorIs(t, err, storageErr, "the storage error wins over the delivery error")
		assert.NotErrorIs(t, err, email.ErrSendFailed)
	})

	t.Run("sent persist fails after successful dispatch", func(t *testing.T) {
		t.Parallel()

		repo := &recordingRepo{failOn: 2, saveError: storageErr}
		emailSender := new(mockEmailSender)
		emailSender.On("Send", ctx, mock.Anything).Return(nil)

		svc := newTestService(repo, emailSender, new(mockPushSender), new(mockRenderer))

		_, err := svc.SendEmail(ctx, notification.SendEmailParams{
			To:          "a@b.com",
			HTMLContent: "<p>Body</p>",
		})
		assert.ErrorIs(t, err, storageErr)
	})
}

func TestService_SendPush_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	pushSender := new(mockPushSender)

	pushSender.On("Send", ctx, push.SendParams{
		DeviceToken: "tok1",
		Title:       "Hi",
		Body:        "There",
		Data:        map[string]string{"screen": "home"},
	}).Return(nil)

	svc := newTestService(repo, new(mockEmailSender), pushSender, new(mockRenderer))

	id, err := svc.SendPush(ctx, notification.SendPushParams{
		DeviceToken: "tok1",
		Title:       "Hi",
		Body:        "There",
		Data:        map[string]string{"screen": "home"},
		Metadata:    notification.Metadata{"campaign": "launch"},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	require.Len(t, repo.saves, 2)
	pending, sent := repo.saves[0], repo.saves[1]
	assert.Equal(t, id, pending.ID)
	assert.Equal(t, "tok1", pending.Recipient)
	assert.Equal(t, notification.TypePush, pending.Type)
	assert.Equal(t, "tok1", pending.Metadata[notification.MetadataKeyDeviceToken])
	assert.Equal(t, "launch", pending.Metadata["campaign"])

	var content map[string]string
	require.NoError(t, json.Unmarshal([]byte(sent.Content), &content))
	assert.Equal(t, map[string]string{"title": "Hi", "body": "There"}, content)

	pushSender.AssertExpectations(t)
}

func TestService_SendPush_ProviderFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &recordingRepo{}
	pushSender := new(mockPushSender)

	deliveryErr := errors.Join(push.ErrSendFailed, errors.New("invalid token"))
	pushSender.On("Send", ctx, mock.Anything).Return(deliveryErr)

	svc := newTestService(repo, new(mockEmailSender), pushSender, new(mockRenderer))

	_, err := svc.SendPush(ctx, notification.SendPushParams{
		DeviceToken: "tok1",
		Title:       "Hi",
		Body:        "There",
	})
	assert.ErrorIs(t, err, push.ErrSendFailed)

	require.Len(t, repo.saves, 2)
	failed := repo.saves[1]
	assert.Equal(t, notification.StatusFailed, failed.Status)
	assert.Equal(t, "tok1", failed.Recipient)
	assert.Contains(t, failed.ErrorMessage, "invalid token")
}

func TestService_History(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		n := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, base)
		require.NoError(t, repo.Save(ctx, n.MarkSent(base.Add(time.Duration(i)*time.Minute))))
	}
	other := notification.NewPush(uuid.New(), "tok1", "{}", nil, base)
	require.NoError(t, repo.Save(ctx, other.MarkSent(base.Add(time.Hour))))

	svc := newTestService(repo, new(mockEmailSender), new(mockPushSender), new(mockRenderer))

	t.Run("filtered by recipient", func(t *testing.T) {
		t.Parallel()

		got, err := svc.History(ctx, notification.HistoryParams{Recipient: "a@b.com"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, n := range got {
			assert.Equal(t, "a@b.com", n.Recipient)
		}
	})

	t.Run("unfiltered", func(t *testing.T) {
		t.Parallel()

		got, err := svc.History(ctx, notification.HistoryParams{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, other.ID, got[0].ID, "newest attempt first")
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		t.Parallel()

		got, err := svc.History(ctx, notification.HistoryParams{Recipient: "nobody@example.com"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()
	n := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, time.Now())
	require.NoError(t, repo.Save(ctx, n))

	svc := newTestService(repo, new(mockEmailSender), new(mockPushSender), new(mockRenderer))

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}
