package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

type fcmSender struct {
	client   *http.Client
	endpoint string
}

// fcmMessage mirrors the FCM HTTP v1 request envelope.
type fcmMessage struct {
	Message fcmPayload `json:"message"`
}

type fcmPayload struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

// NewFCMSender creates a push sender backed by the FCM HTTP v1 API.
// The service-account credentials file is read once at startup; the returned
// sender refreshes access tokens automatically through the oauth2 transport.
func NewFCMSender(ctx context.Context, cfg Config) (Sender, error) {
	if cfg.FCMCredentialsFile == "" {
		return nil, fmt.Errorf("%w: FCMCredentialsFile is required", ErrInvalidConfig)
	}

	raw, err := os.ReadFile(cfg.FCMCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read credentials file: %v", ErrInvalidConfig, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse credentials: %v", ErrInvalidConfig, err)
	}

	projectID := cfg.FCMProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id missing from config and credentials", ErrInvalidConfig)
	}

	return newFCMSender(
		oauth2Client(ctx, creds),
		fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", projectID),
	), nil
}

func newFCMSender(client *http.Client, endpoint string) *fcmSender {
	return &fcmSender{client: client, endpoint: endpoint}
}

// oauth2Client wraps the credential token source in an http.Client that
// attaches and refreshes bearer tokens on every request.
func oauth2Client(ctx context.Context, creds *google.Credentials) *http.Client {
	return oauth2.NewClient(ctx, creds.TokenSource)
}

// Send posts one message to FCM. A non-2xx response is a delivery failure
// carrying the provider's error body.
func (s *fcmSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(fcmMessage{
		Message: fcmPayload{
			Token: params.DeviceToken,
			Notification: fcmNotification{
				Title: params.Title,
				Body:  params.Body,
				Image: params.ImageURL,
			},
			Data: params.Data,
		},
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("fcm error: %d - %s", resp.StatusCode, string(body)),
		)
	}
	return nil
}
