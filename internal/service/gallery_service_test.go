package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiolens/api/internal/models"
	"studiolens/api/internal/repository"
)

func selectionSession(photoCount int) models.PhotoSession {
	photos := make([]models.Photo, 0, photoCount)
	for i := 0; i < photoCount; i++ {
		id := fmt.Sprintf("p%d", i+1)
		photos = append(photos, models.Photo{ID: id, Filename: id + ".jpeg"})
	}
	return models.PhotoSession{
		ID:              "sess-1",
		Name:            "Ana Silva",
		AccessCode:      "AB12CD34",
		Mode:            models.ModeSelection,
		PackageLimit:    30,
		ExtraPhotoPrice: 25,
		Photos:          photos,
		SelectedPhotos:  []string{},
		SelectionStatus: models.SelectionPending,
		Watermark:       true,
		IsActive:        true,
	}
}

func newGallery(store *memStore) (*GalleryService, *notifyRecorder, *conversionRecorder) {
	notifier := &notifyRecorder{}
	publisher := &conversionRecorder{}
	svc := NewGalleryService(store, notifier, publisher, zerolog.Nop())
	return svc, notifier, publisher
}

func TestVerifyCode(t *testing.T) {
	t.Run("valid code records the access", func(t *testing.T) {
		store := newMemStore(selectionSession(2))
		svc, notifier, _ := newGallery(store)

		session, err := svc.VerifyCode(context.Background(), "AB12CD34")

		require.NoError(t, err)
		assert.Equal(t, "sess-1", session.ID)
		assert.Equal(t, []models.NotificationType{models.NotificationSessionAccessed}, notifier.types)
	})

	t.Run("inactive session is invisible", func(t *testing.T) {
		inactive := selectionSession(1)
		inactive.IsActive = false
		store := newMemStore(inactive)
		svc, notifier, _ := newGallery(store)

		_, err := svc.VerifyCode(context.Background(), "AB12CD34")

		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
		assert.Empty(t, notifier.types)
	})

	t.Run("unknown code", func(t *testing.T) {
		store := newMemStore(selectionSession(1))
		svc, _, _ := newGallery(store)

		_, err := svc.VerifyCode(context.Background(), "FFFFFFFF")

		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestTogglePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("first selection starts the workflow", func(t *testing.T) {
		store := newMemStore(selectionSession(3))
		svc, notifier, _ := newGallery(store)

		session, err := svc.TogglePhoto(ctx, "sess-1", "p1", true, "AB12CD34")

		require.NoError(t, err)
		assert.Equal(t, models.SelectionInProgress, session.SelectionStatus)
		assert.Equal(t, []string{"p1"}, session.SelectedPhotos)
		assert.Equal(t, []models.NotificationType{models.NotificationSelectionStarted}, notifier.types)

		persisted, _ := store.GetByID(ctx, "sess-1")
		assert.Equal(t, models.SelectionInProgress, persisted.SelectionStatus)
	})

	t.Run("second selection emits no further start event", func(t *testing.T) {
		store := newMemStore(selectionSession(3))
		svc, notifier, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "p1", true, "AB12CD34")
		require.NoError(t, err)
		_, err = svc.TogglePhoto(ctx, "sess-1", "p2", true, "AB12CD34")
		require.NoError(t, err)

		assert.Len(t, notifier.types, 1)
	})

	t.Run("deselecting the last photo reverts to pending", func(t *testing.T) {
		store := newMemStore(selectionSession(2))
		svc, _, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "p1", true, "AB12CD34")
		require.NoError(t, err)
		session, err := svc.TogglePhoto(ctx, "sess-1", "p1", false, "AB12CD34")

		require.NoError(t, err)
		assert.Equal(t, models.SelectionPending, session.SelectionStatus)
		assert.Empty(t, session.SelectedPhotos)
	})

	t.Run("access code mismatch", func(t *testing.T) {
		store := newMemStore(selectionSession(2))
		svc, _, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "p1", true, "WRONG000")

		assert.ErrorIs(t, err, ErrForbidden)
		persisted, _ := store.GetByID(ctx, "sess-1")
		assert.Empty(t, persisted.SelectedPhotos)
	})

	t.Run("gallery mode rejects selection", func(t *testing.T) {
		s := selectionSession(2)
		s.Mode = models.ModeGallery
		store := newMemStore(s)
		svc, _, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "p1", true, "AB12CD34")

		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("submitted session is locked", func(t *testing.T) {
		s := selectionSession(2)
		s.SelectedPhotos = []string{"p1"}
		s.SelectionStatus = models.SelectionSubmitted
		store := newMemStore(s)
		svc, _, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "p2", true, "AB12CD34")

		assert.ErrorIs(t, err, ErrAlreadyFinalized)
		persisted, _ := store.GetByID(ctx, "sess-1")
		assert.Equal(t, []string{"p1"}, persisted.SelectedPhotos)
	})

	t.Run("unknown photo", func(t *testing.T) {
		store := newMemStore(selectionSession(1))
		svc, _, _ := newGallery(store)

		_, err := svc.TogglePhoto(ctx, "sess-1", "ghost", true, "AB12CD34")

		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})
}

func TestSubmitSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection is rejected", func(t *testing.T) {
		store := newMemStore(selectionSession(3))
		svc, _, _ := newGallery(store)

		_, _, err := svc.SubmitSelection(ctx, "sess-1", "AB12CD34")

		assert.ErrorIs(t, err, ErrEmptySelection)
		persisted, _ := store.GetByID(ctx, "sess-1")
		assert.Equal(t, models.SelectionPending, persisted.SelectionStatus)
	})

	t.Run("locks and reports extras", func(t *testing.T) {
		s := selectionSession(40)
		s.PackageLimit = 30
		s.SelectionStatus = models.SelectionInProgress
		for i := 0; i < 32; i++ {
			s.SelectedPhotos = append(s.SelectedPhotos, s.Photos[i].ID)
		}
		store := newMemStore(s)
		svc, notifier, publisher := newGallery(store)
		submittedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return submittedAt }

		session, extras, err := svc.SubmitSelection(ctx, "sess-1", "AB12CD34")

		require.NoError(t, err)
		assert.Equal(t, 2, extras)
		assert.Equal(t, models.SelectionSubmitted, session.SelectionStatus)
		require.NotNil(t, session.SelectionSubmittedAt)
		assert.Equal(t, submittedAt, *session.SelectionSubmittedAt)

		assert.Equal(t, []models.NotificationType{models.NotificationSelectionSubmitted}, notifier.types)
		require.Len(t, publisher.values, 1)
		assert.Equal(t, "Ana Silva", publisher.names[0])
		assert.InDelta(t, 50.0, publisher.values[0], 0.001)
	})

	t.Run("already submitted", func(t *testing.T) {
		s := selectionSession(2)
		s.SelectedPhotos = []string{"p1"}
		s.SelectionStatus = models.SelectionSubmitted
		store := newMemStore(s)
		svc, _, _ := newGallery(store)

		_, _, err := svc.SubmitSelection(ctx, "sess-1", "AB12CD34")

		assert.ErrorIs(t, err, ErrAlreadyFinalized)
	})
}

func TestRequestReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("submitted session records the request without changing state", func(t *testing.T) {
		s := selectionSession(2)
		s.SelectedPhotos = []string{"p1"}
		s.SelectionStatus = models.SelectionSubmitted
		store := newMemStore(s)
		svc, notifier, _ := newGallery(store)

		err := svc.RequestReopen(ctx, "sess-1", "AB12CD34")

		require.NoError(t, err)
		assert.Equal(t, []models.NotificationType{models.NotificationReopenRequested}, notifier.types)
		persisted, _ := store.GetByID(ctx, "sess-1")
		assert.Equal(t, models.SelectionSubmitted, persisted.SelectionStatus)
	})

	t.Run("only submitted selections can be reopened", func(t *testing.T) {
		store := newMemStore(selectionSession(2))
		svc, _, _ := newGallery(store)

		err := svc.RequestReopen(ctx, "sess-1", "AB12CD34")

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("access code mismatch", func(t *testing.T) {
		s := selectionSession(2)
		s.SelectionStatus = models.SelectionSubmitted
		store := newMemStore(s)
		svc, _, _ := newGallery(store)

		err := svc.RequestReopen(ctx, "sess-1", "WRONG000")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
