package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studiolens/api/internal/ids"
	"studiolens/api/internal/media/sniffer"
	"studiolens/api/internal/models"
	"studiolens/api/internal/security"
)

// PhotoObjectStore holds the uploaded photo files.
type PhotoObjectStore interface {
	Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
}

// SessionService is the admin side: session lifecycle, photo registry and the
// admin-driven state transitions.
type SessionService struct {
	sessions SessionStore
	objects  PhotoObjectStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, objects PhotoObjectStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		objects:  objects,
		log:      log,
		now:      time.Now,
	}
}

type CreateSessionInput struct {
	Name            string
	Type            string
	Date            time.Time
	Mode            models.SessionMode
	PackageLimit    int
	ExtraPhotoPrice float64
	CanShare        bool
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (models.PhotoSession, error) {
	accessCode, err := security.NewAccessCode()
	if err != nil {
		return models.PhotoSession{}, err
	}

	mode := input.Mode
	if mode == "" {
		mode = models.ModeSelection
	}
	packageLimit := input.PackageLimit
	if packageLimit <= 0 {
		packageLimit = 30
	}
	extraPrice := input.ExtraPhotoPrice
	if extraPrice <= 0 {
		extraPrice = 25
	}

	now := s.now().UTC()
	session := models.PhotoSession{
		ID:              ids.New(),
		Name:            input.Name,
		Type:            input.Type,
		Date:            input.Date,
		AccessCode:      accessCode,
		Mode:            mode,
		PackageLimit:    packageLimit,
		ExtraPhotoPrice: extraPrice,
		Photos:          []models.Photo{},
		SelectedPhotos:  []string{},
		SelectionStatus: models.SelectionPending,
		Watermark:       true,
		CanShare:        input.CanShare,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return models.PhotoSession{}, err
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]models.PhotoSession, error) {
	return s.sessions.List(ctx)
}

func (s *SessionService) Get(ctx context.Context, id string) (models.PhotoSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// UpdateSessionInput carries the editable metadata. Nil fields are left
// untouched; selection state is never editable through here.
type UpdateSessionInput struct {
	Name            *string
	Type            *string
	Date            *time.Time
	Mode            *models.SessionMode
	PackageLimit    *int
	ExtraPhotoPrice *float64
	CanShare        *bool
	IsActive        *bool
}

func (s *SessionService) Update(ctx context.Context, id string, input UpdateSessionInput) (models.PhotoSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return models.PhotoSession{}, err
	}

	if input.Name != nil {
		session.Name = *input.Name
	}
	if input.Type != nil {
		session.Type = *input.Type
	}
	if input.Date != nil {
		session.Date = *input.Date
	}
	if input.Mode != nil {
		session.Mode = *input.Mode
	}
	if input.PackageLimit != nil {
		session.PackageLimit = *input.PackageLimit
	}
	if input.ExtraPhotoPrice != nil {
		session.ExtraPhotoPrice = *input.ExtraPhotoPrice
	}
	if input.CanShare != nil {
		session.CanShare = *input.CanShare
	}
	if input.IsActive != nil {
		session.IsActive = *input.IsActive
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return models.PhotoSession{}, err
	}
	return session, nil
}

// Delete removes the session document and its backing photo objects. Object
// removal is best-effort.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, photo := range session.Photos {
		key := objectKey(session.ID, photo.Filename)
		if err := s.objects.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("object", key).Msg("photo object removal failed")
		}
	}

	return s.sessions.Delete(ctx, id)
}

// Reopen hands a submitted selection back to the client.
func (s *SessionService) Reopen(ctx context.Context, id string) (models.PhotoSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return models.PhotoSession{}, err
	}
	if session.SelectionStatus != models.SelectionSubmitted {
		return models.PhotoSession{}, ErrInvalidTransition
	}

	session.Reopen()

	if err := s.sessions.Update(ctx, session); err != nil {
		return models.PhotoSession{}, err
	}
	return session, nil
}

// Deliver marks the session delivered from any prior status.
func (s *SessionService) Deliver(ctx context.Context, id string) (models.PhotoSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return models.PhotoSession{}, err
	}

	session.Deliver(s.now().UTC())

	if err := s.sessions.Update(ctx, session); err != nil {
		return models.PhotoSession{}, err
	}
	return session, nil
}

type ExportResult struct {
	Filename string
	Content  string
}

// Export produces the newline-delimited filenames of the selected photos, in
// upload order, for the studio's editing tools.
func (s *SessionService) Export(ctx context.Context, id string) (ExportResult, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return ExportResult{}, err
	}

	name := strings.Join(strings.Fields(session.Name), "-")
	if name == "" {
		name = session.ID
	}

	return ExportResult{
		Filename: fmt.Sprintf("selection-%s.txt", name),
		Content:  strings.Join(session.SelectedFilenames(), "\n"),
	}, nil
}

// AddPhotos validates, stores and registers a batch of uploads, returning the
// new photo descriptors in upload order.
func (s *SessionService) AddPhotos(ctx context.Context, sessionID string, files []*multipart.FileHeader) ([]models.Photo, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	added := make([]models.Photo, 0, len(files))
	for _, header := range files {
		photo, err := s.storePhoto(ctx, session.ID, header)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", header.Filename, err)
		}
		added = append(added, photo)
	}

	session.Photos = append(session.Photos, added...)

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *SessionService) storePhoto(ctx context.Context, sessionID string, header *multipart.FileHeader) (models.Photo, error) {
	file, err := header.Open()
	if err != nil {
		return models.Photo{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Photo{}, fmt.Errorf("read upload: %w", err)
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Photo{}, err
	}

	photoID := ids.New()
	filename := fmt.Sprintf("%s.%s", photoID, result.Type)
	key := objectKey(sessionID, filename)

	if err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return models.Photo{}, err
	}

	return models.Photo{
		ID:         photoID,
		Filename:   filename,
		URL:        s.objects.PublicURL(key),
		UploadedAt: s.now().UTC(),
	}, nil
}

// RemovePhoto drops a photo from the registry, cascading into the selection.
// The backing object is removed best-effort.
func (s *SessionService) RemovePhoto(ctx context.Context, sessionID, photoID string) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	photo, ok := session.RemovePhoto(photoID)
	if !ok {
		return ErrPhotoNotFound
	}

	key := objectKey(session.ID, photo.Filename)
	if err := s.objects.Remove(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("object", key).Msg("photo object removal failed")
	}

	return s.sessions.Update(ctx, session)
}

func objectKey(sessionID, filename string) string {
	return path.Join("sessions", sessionID, filename)
}
