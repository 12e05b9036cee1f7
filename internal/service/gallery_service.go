package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"studiolens/api/internal/models"
	"studiolens/api/internal/repository"
)

// SessionStore is the session document store. Reads return the whole
// document; Update writes it back whole.
type SessionStore interface {
	Create(ctx context.Context, session models.PhotoSession) error
	GetByID(ctx context.Context, id string) (models.PhotoSession, error)
	FindByAccessCode(ctx context.Context, accessCode string) (models.PhotoSession, error)
	Update(ctx context.Context, session models.PhotoSession) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.PhotoSession, error)
}

// Notifier records an admin-facing audit event. Implementations must swallow
// their own failures.
type Notifier interface {
	Notify(ctx context.Context, typ models.NotificationType, sessionID, sessionName, message string)
}

// ConversionPublisher relays marketing conversion events. Best-effort only.
type ConversionPublisher interface {
	SelectionCompleted(ctx context.Context, contentName string, value float64)
}

// GalleryService is the client side of the selection workflow: access-code
// validation, photo toggling, submission and reopen requests.
type GalleryService struct {
	sessions    SessionStore
	notifier    Notifier
	conversions ConversionPublisher
	log         zerolog.Logger
	now         func() time.Time
}

func NewGalleryService(sessions SessionStore, notifier Notifier, conversions ConversionPublisher, log zerolog.Logger) *GalleryService {
	return &GalleryService{
		sessions:    sessions,
		notifier:    notifier,
		conversions: conversions,
		log:         log,
		now:         time.Now,
	}
}

// VerifyCode resolves an access code to its active session and records the
// gallery access.
func (s *GalleryService) VerifyCode(ctx context.Context, accessCode string) (models.PhotoSession, error) {
	session, err := s.sessions.FindByAccessCode(ctx, accessCode)
	if err != nil {
		return models.PhotoSession{}, err
	}

	s.notifier.Notify(ctx, models.NotificationSessionAccessed, session.ID, session.Name,
		fmt.Sprintf("%s opened the gallery", session.Name))

	return session, nil
}

// Gallery returns the photo list and selection state for a session the client
// already verified. The access code is re-checked on every read.
func (s *GalleryService) Gallery(ctx context.Context, sessionID, accessCode string) (models.PhotoSession, error) {
	return s.authorize(ctx, sessionID, accessCode)
}

// TogglePhoto adds or removes one photo from the selection and drives the
// pending/in_progress transitions. Returns the updated session.
func (s *GalleryService) TogglePhoto(ctx context.Context, sessionID, photoID string, selected bool, accessCode string) (models.PhotoSession, error) {
	session, err := s.authorize(ctx, sessionID, accessCode)
	if err != nil {
		return models.PhotoSession{}, err
	}

	if session.Mode != models.ModeSelection {
		return models.PhotoSession{}, ErrInvalidMode
	}
	if session.Finalized() {
		return models.PhotoSession{}, ErrAlreadyFinalized
	}
	if !session.HasPhoto(photoID) {
		return models.PhotoSession{}, ErrPhotoNotFound
	}

	started := session.ApplySelection(photoID, selected)

	if err := s.sessions.Update(ctx, session); err != nil {
		return models.PhotoSession{}, err
	}

	if started {
		s.notifier.Notify(ctx, models.NotificationSelectionStarted, session.ID, session.Name,
			fmt.Sprintf("%s started selecting photos", session.Name))
	}

	return session, nil
}

// SubmitSelection locks the selection. Returns the updated session and the
// number of photos beyond the package limit.
func (s *GalleryService) SubmitSelection(ctx context.Context, sessionID, accessCode string) (models.PhotoSession, int, error) {
	session, err := s.authorize(ctx, sessionID, accessCode)
	if err != nil {
		return models.PhotoSession{}, 0, err
	}

	if session.Mode != models.ModeSelection {
		return models.PhotoSession{}, 0, ErrInvalidMode
	}
	if session.Finalized() {
		return models.PhotoSession{}, 0, ErrAlreadyFinalized
	}
	if len(session.SelectedPhotos) == 0 {
		return models.PhotoSession{}, 0, ErrEmptySelection
	}

	extras := session.Submit(s.now().UTC())

	if err := s.sessions.Update(ctx, session); err != nil {
		return models.PhotoSession{}, 0, err
	}

	s.notifier.Notify(ctx, models.NotificationSelectionSubmitted, session.ID, session.Name,
		fmt.Sprintf("%s submitted their selection (%d photos, %d extras)",
			session.Name, len(session.SelectedPhotos), extras))

	if s.conversions != nil {
		s.conversions.SelectionCompleted(ctx, session.Name, float64(extras)*session.ExtraPhotoPrice)
	}

	return session, extras, nil
}

// RequestReopen records the client's wish to change a submitted selection.
// Only the admin actually reopens; the session is left untouched.
func (s *GalleryService) RequestReopen(ctx context.Context, sessionID, accessCode string) error {
	session, err := s.authorize(ctx, sessionID, accessCode)
	if err != nil {
		return err
	}

	if session.SelectionStatus != models.SelectionSubmitted {
		return ErrInvalidTransition
	}

	s.notifier.Notify(ctx, models.NotificationReopenRequested, session.ID, session.Name,
		fmt.Sprintf("%s asked to reopen their selection", session.Name))

	return nil
}

func (s *GalleryService) authorize(ctx context.Context, sessionID, accessCode string) (models.PhotoSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return models.PhotoSession{}, err
	}
	if !session.IsActive {
		// An inactive session is indistinguishable from a missing one.
		return models.PhotoSession{}, repository.ErrSessionNotFound
	}
	if session.AccessCode != accessCode {
		return models.PhotoSession{}, ErrForbidden
	}
	return session, nil
}
