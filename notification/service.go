package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/xumalabs/notifier/pkg/email"
	"github.com/xumalabs/notifier/pkg/logger"
	"github.com/xumalabs/notifier/pkg/push"
	"github.com/xumalabs/notifier/pkg/templates"
)

// SendEmailParams is the input of the email use case. Exactly one content
// source must be supplied: a template name with data, or literal HTML. When a
// template is given, the rendered output becomes the body and HTMLContent is
// ignored.
type SendEmailParams struct {
	To           string
	Subject      string
	TemplateName string
	TemplateData templates.Data
	HTMLContent  string
	TextContent  string
	Metadata     Metadata
}

// SendPushParams is the input of the push use case. Data values must already
// be strings; the provider payload does not accept other types.
type SendPushParams struct {
	DeviceToken string
	Title       string
	Body        string
	Data        map[string]string
	ImageURL    string
	Metadata    Metadata
}

// HistoryParams selects a slice of the delivery history. A non-empty
// Recipient restricts the result to that recipient; Offset only applies to
// unfiltered queries.
type HistoryParams struct {
	Recipient string
	Limit     int
	Offset    int
}

// Service orchestrates the delivery pipeline: it drives a notification
// through its lifecycle, calling exactly one channel port and the repository
// twice per send.
type Service struct {
	repo     Repository
	email    email.Sender
	push     push.Sender
	renderer templates.Renderer
	log      *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger supplies an external slog.Logger. If not set, logs are discarded.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides notification ID generation. Intended for tests.
func WithIDGenerator(newID func() uuid.UUID) ServiceOption {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the delivery pipeline from its ports. All dependencies are
// required except the options.
func NewService(repo Repository, emailSender email.Sender, pushSender push.Sender, renderer templates.Renderer, opts ...ServiceOption) *Service {
	if repo == nil {
		panic("notification: repository is required")
	}
	if emailSender == nil {
		panic("notification: email sender is required")
	}
	if pushSender == nil {
		panic("notification: push sender is required")
	}
	if renderer == nil {
		panic("notification: template renderer is required")
	}

	s := &Service{
		repo:     repo,
		email:    emailSender,
		push:     pushSender,
		renderer: renderer,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendEmail renders the body if a template is given, persists a pending
// record, dispatches through the email port, and persists the terminal
// status. It returns the notification ID on success. On provider failure the
// failed record is persisted before the provider's error is returned.
func (s *Service) SendEmail(ctx context.Context, params SendEmailParams) (uuid.UUID, error) {
	html := params.HTMLContent
	if params.TemplateName != "" {
		if params.TemplateData == nil {
			return uuid.Nil, ErrMissingContent
		}
		rendered, err := s.renderer.RenderEmailTemplate(ctx, params.TemplateName, params.TemplateData)
		if err != nil {
			// Nothing has been persisted yet; render failures leave no trace.
			return uuid.Nil, err
		}
		html = rendered
	}
	if html == "" {
		return uuid.Nil, ErrMissingContent
	}

	id := s.newID()
	pending := NewEmail(id, params.To, params.Subject, html, params.Metadata, s.now())
	if err := s.repo.Save(ctx, pending); err != nil {
		return uuid.Nil, err
	}

	s.log.DebugContext(ctx, "Dispatching email notification",
		logger.NotificationID(id.String()),
		logger.Recipient(params.To),
		logger.Template(params.TemplateName),
	)

	sendErr := s.email.Send(ctx, email.SendParams{
		To:      params.To,
		Subject: params.Subject,
		HTML:    html,
		Text:    params.TextContent,
	})

	return s.finalize(ctx, pending, sendErr)
}

// SendPush persists a pending record with the title/body pair serialized into
// the content field, dispatches through the push port, and persists the
// terminal status.
func (s *Service) SendPush(ctx context.Context, params SendPushParams) (uuid.UUID, error) {
	content, err := json.Marshal(map[string]string{
		"title": params.Title,
		"body":  params.Body,
	})
	if err != nil {
		return uuid.Nil, err
	}

	id := s.newID()
	pending := NewPush(id, params.DeviceToken, string(content), params.Metadata, s.now())
	if err := s.repo.Save(ctx, pending); err != nil {
		return uuid.Nil, err
	}

	s.log.DebugContext(ctx, "Dispatching push notification",
		logger.NotificationID(id.String()),
		logger.Recipient(params.DeviceToken),
	)

	sendErr := s.push.Send(ctx, push.SendParams{
		DeviceToken: params.DeviceToken,
		Title:       params.Title,
		Body:        params.Body,
		Data:        params.Data,
		ImageURL:    params.ImageURL,
	})

	return s.finalize(ctx, pending, sendErr)
}

// finalize persists the terminal status derived from the dispatch outcome.
// The failed copy is built from the pending entity so the recorded content is
// exactly what was handed to the provider. A storage failure here propagates
// and takes precedence over the delivery error.
func (s *Service) finalize(ctx context.Context, pending Notification, sendErr error) (uuid.UUID, error) {
	if sendErr != nil {
		failed := pending.MarkFailed(s.now(), sendErr.Error())
		if err := s.repo.Save(ctx, failed); err != nil {
			s.log.ErrorContext(ctx, "Failed to record delivery failure",
				logger.NotificationID(pending.ID.String()),
				logger.Error(err),
			)
			return uuid.Nil, err
		}
		s.log.WarnContext(ctx, "Notification delivery failed",
			logger.NotificationID(pending.ID.String()),
			logger.Channel(string(pending.Type)),
			logger.Error(sendErr),
		)
		return uuid.Nil, sendErr
	}

	sent := pending.MarkSent(s.now())
	if err := s.repo.Save(ctx, sent); err != nil {
		return uuid.Nil, err
	}
	s.log.InfoContext(ctx, "Notification sent",
		logger.NotificationID(pending.ID.String()),
		logger.Channel(string(pending.Type)),
		logger.Recipient(pending.Recipient),
	)
	return pending.ID, nil
}

// History returns a slice of the delivery history ordered by attempt
// completion time, most recent first. An empty result is not an error.
func (s *Service) History(ctx context.Context, params HistoryParams) ([]Notification, error) {
	if params.Recipient != "" {
		return s.repo.FindByRecipient(ctx, params.Recipient, params.Limit)
	}
	return s.repo.FindAll(ctx, params.Limit, params.Offset)
}

// Get returns a single notification by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Notification, error) {
	return s.repo.FindByID(ctx, id)
}
