package api

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

type sendEmailRequest struct {
	To           string         `json:"to" validate:"required,email"`
	Subject      string         `json:"subject" validate:"required"`
	TemplateName string         `json:"templateName" validate:"required_without=HTMLContent"`
	TemplateData map[string]any `json:"templateData" validate:"required_with=TemplateName"`
	HTMLContent  string         `json:"htmlContent"`
	TextContent  string         `json:"textContent"`
	Metadata     map[string]any `json:"metadata"`
}

type sendPushRequest struct {
	DeviceToken string            `json:"deviceToken" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Body        string            `json:"body" validate:"required"`
	Data        map[string]string `json:"data"`
	ImageURL    string            `json:"imageUrl" validate:"omitempty,url"`
	Metadata    map[string]any    `json:"metadata"`
}

type sendWelcomeEmailRequest struct {
	To       string `json:"to" validate:"required,email"`
	UserName string `json:"userName" validate:"required"`
	AppURL   string `json:"appUrl" validate:"omitempty,url"`
}

type sendReminderEmailRequest struct {
	To              string `json:"to" validate:"required,email"`
	UserName        string `json:"userName" validate:"required"`
	ReminderTitle   string `json:"reminderTitle" validate:"required"`
	ReminderMessage string `json:"reminderMessage" validate:"required"`
	ReminderDetails string `json:"reminderDetails"`
	ActionURL       string `json:"actionUrl" validate:"omitempty,url"`
	ActionText      string `json:"actionText"`
}

type historyQuery struct {
	Recipient string `validate:"omitempty"`
	Limit     int    `validate:"omitempty,min=1,max=500"`
	Offset    int    `validate:"omitempty,min=0"`
}
