package notification_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xumalabs/notifier/notification"
)

func TestMemoryRepository_SaveUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()

	pending := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, time.Now())
	require.NoError(t, repo.Save(ctx, pending))

	sent := pending.MarkSent(time.Now())
	require.NoError(t, repo.Save(ctx, sent))

	got, err := repo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusSent, got.Status)

	all, err := repo.FindAll(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not create a second record for the same id")
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := notification.NewMemoryRepository()
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestMemoryRepository_FindByRecipient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		n := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, base)
		n = n.MarkSent(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, repo.Save(ctx, n))
	}
	other := notification.NewEmail(uuid.New(), "c@d.com", "Hi", "<p>Hi</p>", nil, base)
	require.NoError(t, repo.Save(ctx, other.MarkSent(base.Add(time.Hour))))

	got, err := repo.FindByRecipient(ctx, "a@b.com", 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, n := range got {
		assert.Equal(t, "a@b.com", n.Recipient)
		require.NotNil(t, n.SentAt)
		assert.Equal(t, base.Add(time.Duration(9-i)*time.Minute), *n.SentAt, "records must be newest first")
	}
}

func TestMemoryRepository_FindByRecipient_DefaultLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < notification.DefaultHistoryLimit+7; i++ {
		n := notification.NewEmail(uuid.New(), "a@b.com", fmt.Sprintf("Hi %d", i), "<p>Hi</p>", nil, base)
		require.NoError(t, repo.Save(ctx, n.MarkSent(base.Add(time.Duration(i)*time.Second))))
	}

	got, err := repo.FindByRecipient(ctx, "a@b.com", 0)
	require.NoError(t, err)
	assert.Len(t, got, notification.DefaultHistoryLimit)
}

func TestMemoryRepository_FindAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := notification.NewMemoryRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		n := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, base)
		require.NoError(t, repo.Save(ctx, n.MarkSent(base.Add(time.Duration(i)*time.Minute))))
	}
	// A record that never completed sorts after all completed ones.
	stuck := notification.NewEmail(uuid.New(), "a@b.com", "Hi", "<p>Hi</p>", nil, base)
	require.NoError(t, repo.Save(ctx, stuck))

	t.Run("pagination", func(t *testing.T) {
		t.Parallel()

		page, err := repo.FindAll(ctx, 3, 2)
		require.NoError(t, err)
		require.Len(t, page, 3)
		require.NotNil(t, page[0].SentAt)
		assert.Equal(t, base.Add(3*time.Minute), *page[0].SentAt)
	})

	t.Run("pending records sort last", func(t *testing.T) {
		t.Parallel()

		all, err := repo.FindAll(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 7)
		assert.Equal(t, stuck.ID, all[6].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		t.Parallel()

		page, err := repo.FindAll(ctx, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, page)
	})
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	repo := notification.NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, notification.NewEmail(uuid.New(), "a@b.com", "Hi", "x", nil, time.Now()))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.FindAll(ctx, 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
