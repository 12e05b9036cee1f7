package service

import (
	"context"
	"fmt"
	"io"

	"studiolens/api/internal/models"
	"studiolens/api/internal/repository"
)

// memStore is an in-memory SessionStore for service tests.
type memStore struct {
	sessions map[string]models.PhotoSession
	updates  int
}

func newMemStore(sessions ...models.PhotoSession) *memStore {
	store := &memStore{sessions: make(map[string]models.PhotoSession)}
	for _, s := range sessions {
		store.sessions[s.ID] = s
	}
	return store
}

func (m *memStore) Create(_ context.Context, session models.PhotoSession) error {
	if _, ok := m.sessions[session.ID]; ok {
		return fmt.Errorf("duplicate session %s", session.ID)
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (models.PhotoSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return models.PhotoSession{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (m *memStore) FindByAccessCode(_ context.Context, accessCode string) (models.PhotoSession, error) {
	for _, session := range m.sessions {
		if session.AccessCode == accessCode && session.IsActive {
			return session, nil
		}
	}
	return models.PhotoSession{}, repository.ErrSessionNotFound
}

func (m *memStore) Update(_ context.Context, session models.PhotoSession) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	m.sessions[session.ID] = session
	m.updates++
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) List(_ context.Context) ([]models.PhotoSession, error) {
	sessions := make([]models.PhotoSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// notifyRecorder captures emitted notification types.
type notifyRecorder struct {
	types    []models.NotificationType
	messages []string
}

func (r *notifyRecorder) Notify(_ context.Context, typ models.NotificationType, _, _, message string) {
	r.types = append(r.types, typ)
	r.messages = append(r.messages, message)
}

// conversionRecorder captures published conversion events.
type conversionRecorder struct {
	names  []string
	values []float64
}

func (r *conversionRecorder) SelectionCompleted(_ context.Context, contentName string, value float64) {
	r.names = append(r.names, contentName)
	r.values = append(r.values, value)
}

// fakeObjectStore records puts/removes and can simulate removal failures.
type fakeObjectStore struct {
	putKeys    []string
	removed    []string
	failRemove bool
}

func (f *fakeObjectStore) Put(_ context.Context, objectKey string, _ io.Reader, _ int64, _ string) error {
	f.putKeys = append(f.putKeys, objectKey)
	return nil
}

func (f *fakeObjectStore) Remove(_ context.Context, objectKey string) error {
	if f.failRemove {
		return fmt.Errorf("bucket unavailable")
	}
	f.removed = append(f.removed, objectKey)
	return nil
}

func (f *fakeObjectStore) PublicURL(objectKey string) string {
	return "https://cdn.example.test/" + objectKey
}
