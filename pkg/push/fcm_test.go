package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFCMSender_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("posts v1 message envelope", func(t *testing.T) {
		t.Parallel()

		var got fcmMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		sender := newFCMSender(srv.Client(), srv.URL)
		err := sender.Send(ctx, SendParams{
			DeviceToken: "tok1",
			Title:       "Hi",
			Body:        "There",
			Data:        map[string]string{"type": "challenge"},
			ImageURL:    "https://example.com/img.jpg",
		})
		require.NoError(t, err)

		assert.Equal(t, "tok1", got.Message.Token)
		assert.Equal(t, "Hi", got.Message.Notification.Title)
		assert.Equal(t, "There", got.Message.Notification.Body)
		assert.Equal(t, "https://example.com/img.jpg", got.Message.Notification.Image)
		assert.Equal(t, map[string]string{"type": "challenge"}, got.Message.Data)
	})

	t.Run("provider error surfaces as send failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"invalid token"}}`))
		}))
		defer srv.Close()

		sender := newFCMSender(srv.Client(), srv.URL)
		err := sender.Send(ctx, SendParams{DeviceToken: "bad", Title: "Hi", Body: "There"})

		assert.ErrorIs(t, err, ErrSendFailed)
		assert.Contains(t, err.Error(), "invalid token")
	})

	t.Run("invalid params never reach the wire", func(t *testing.T) {
		t.Parallel()

		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		sender := newFCMSender(srv.Client(), srv.URL)
		err := sender.Send(ctx, SendParams{Title: "Hi", Body: "There"})

		assert.ErrorIs(t, err, ErrInvalidParams)
		assert.False(t, called)
	})
}

func TestNewFCMSender_ConfigValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing credentials file", func(t *testing.T) {
		t.Parallel()

		_, err := NewFCMSender(ctx, Config{})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unreadable credentials file", func(t *testing.T) {
		t.Parallel()

		_, err := NewFCMSender(ctx, Config{FCMCredentialsFile: "/nonexistent/creds.json"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  SendParams
		wantErr string
	}{
		{
			name:   "valid",
			params: SendParams{DeviceToken: "tok1", Title: "Hi", Body: "There"},
		},
		{
			name:    "missing token",
			params:  SendParams{Title: "Hi", Body: "There"},
			wantErr: "DeviceToken is required",
		},
		{
			name:    "missing title",
			params:  SendParams{DeviceToken: "tok1", Body: "There"},
			wantErr: "Title is required",
		},
		{
			name:    "missing body",
			params:  SendParams{DeviceToken: "tok1", Title: "Hi"},
			wantErr: "Body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrInvalidParams)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
