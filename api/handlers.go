package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xumalabs/notifier/notification"
	"github.com/xumalabs/notifier/pkg/logger"
	"github.com/xumalabs/notifier/pkg/templates"
)

// NotificationService is the slice of the delivery pipeline the HTTP layer
// depends on.
type NotificationService interface {
	SendEmail(ctx context.Context, params notification.SendEmailParams) (uuid.UUID, error)
	SendPush(ctx context.Context, params notification.SendPushParams) (uuid.UUID, error)
	History(ctx context.Context, params notification.HistoryParams) ([]notification.Notification, error)
}

type handler struct {
	svc NotificationService
	log *slog.Logger
}

func (h *handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.svc.SendEmail(r.Context(), notification.SendEmailParams{
		To:           req.To,
		Subject:      req.Subject,
		TemplateName: req.TemplateName,
		TemplateData: templates.Data(req.TemplateData),
		HTMLContent:  req.HTMLContent,
		TextContent:  req.TextContent,
		Metadata:     notification.Metadata(req.Metadata),
	})
	if err != nil {
		h.writeSendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendResponse{
		Success:        true,
		Message:        "Email notification sent",
		NotificationID: id.String(),
	})
}

func (h *handler) sendWelcomeEmail(w http.ResponseWriter, r *http.Request) {
	var req sendWelcomeEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.svc.SendEmail(r.Context(), notification.SendEmailParams{
		To:           req.To,
		Subject:      "Welcome!",
		TemplateName: "welcome",
		TemplateData: templates.Data{
			"userName": req.UserName,
			"appUrl":   req.AppURL,
		},
		Metadata: notification.Metadata{"category": "welcome"},
	})
	if err != nil {
		h.writeSendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendResponse{
		Success:        true,
		Message:        "Welcome email sent",
		NotificationID: id.String(),
	})
}

func (h *handler) sendReminderEmail(w http.ResponseWriter, r *http.Request) {
	var req sendReminderEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.svc.SendEmail(r.Context(), notification.SendEmailParams{
		To:           req.To,
		Subject:      req.ReminderTitle,
		TemplateName: "reminder",
		TemplateData: templates.Data{
			"userName":        req.UserName,
			"reminderTitle":   req.ReminderTitle,
			"reminderMessage": req.ReminderMessage,
			"reminderDetails": req.ReminderDetails,
			"actionUrl":       req.ActionURL,
			"actionText":      req.ActionText,
		},
		Metadata: notification.Metadata{"category": "reminder"},
	})
	if err != nil {
		h.writeSendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendResponse{
		Success:        true,
		Message:        "Reminder email sent",
		NotificationID: id.String(),
	})
}

func (h *handler) sendPush(w http.ResponseWriter, r *http.Request) {
	var req sendPushRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.svc.SendPush(r.Context(), notification.SendPushParams{
		DeviceToken: req.DeviceToken,
		Title:       req.Title,
		Body:        req.Body,
		Data:        req.Data,
		ImageURL:    req.ImageURL,
		Metadata:    notification.Metadata(req.Metadata),
	})
	if err != nil {
		h.writeSendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendResponse{
		Success:        true,
		Message:        "Push notification sent",
		NotificationID: id.String(),
	})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	q := historyQuery{Recipient: r.URL.Query().Get("recipient")}

	var err error
	if q.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "limit must be an integer")
		return
	}
	if q.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "offset must be an integer")
		return
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	ns, err := h.svc.History(r.Context(), notification.HistoryParams{
		Recipient: q.Recipient,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to query notification history", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "storage_error", "failed to query notification history")
		return
	}

	views := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		views = append(views, toView(n))
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, Count: len(views), Notifications: views})
}

// writeSendError maps pipeline failures to HTTP statuses: bad input is the
// caller's fault, everything downstream of validation is a 500.
func (h *handler) writeSendError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, notification.ErrMissingContent) {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	h.log.ErrorContext(r.Context(), "Failed to send notification", logger.Error(err))

	switch {
	case errors.Is(err, templates.ErrTemplateNotFound), errors.Is(err, templates.ErrRenderFailed):
		writeError(w, http.StatusInternalServerError, "template_error", err.Error())
	case errors.Is(err, notification.ErrFailedToSaveNotification):
		writeError(w, http.StatusInternalServerError, "storage_error", "failed to persist notification")
	default:
		writeError(w, http.StatusInternalServerError, "delivery_error", err.Error())
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "required_without":
			msgs = append(msgs, "either "+fe.Field()+" or "+fe.Param()+" is required")
		case "required_with":
			msgs = append(msgs, fe.Field()+" is required when "+fe.Param()+" is set")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "url":
			msgs = append(msgs, fe.Field()+" must be a valid URL")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
