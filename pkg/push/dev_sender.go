package push

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DevSender implements Sender for local development.
// It writes each push payload as a JSON file instead of contacting FCM.
type DevSender struct {
	dir string
}

// NewDevSender creates a development push sender that writes payloads to disk.
// The directory is created on first send if it does not exist.
func NewDevSender(dir string) Sender {
	return &DevSender{dir: dir}
}

type devPushRecord struct {
	Timestamp   string            `json:"timestamp"`
	DeviceToken string            `json:"device_token"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
}

func (d *DevSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()
	record := devPushRecord{
		Timestamp:   now.Format(time.RFC3339),
		DeviceToken: params.DeviceToken,
		Title:       params.Title,
		Body:        params.Body,
		Data:        params.Data,
		ImageURL:    params.ImageURL,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrSendFailed, err)
	}

	name := fmt.Sprintf("%s_push.json", now.Format("2006_01_02_150405.000"))
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write payload file: %v", ErrSendFailed, err)
	}

	return nil
}
