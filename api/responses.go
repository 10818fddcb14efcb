package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xumalabs/notifier/notification"
)

type sendResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
}

type historyResponse struct {
	Success       bool               `json:"success"`
	Count         int                `json:"count"`
	Notifications []notificationView `json:"notifications"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// notificationView is the wire shape of a notification record.
type notificationView struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Recipient    string         `json:"recipient"`
	Subject      string         `json:"subject,omitempty"`
	Content      string         `json:"content"`
	Status       string         `json:"status"`
	SentAt       *time.Time     `json:"sentAt,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func toView(n notification.Notification) notificationView {
	return notificationView{
		ID:           n.ID.String(),
		Type:         string(n.Type),
		Recipient:    n.Recipient,
		Subject:      n.Subject,
		Content:      n.Content,
		Status:       string(n.Status),
		SentAt:       n.SentAt,
		ErrorMessage: n.ErrorMessage,
		Metadata:     n.Metadata,
		CreatedAt:    n.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}
