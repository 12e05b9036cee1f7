package models

import "time"

type SessionMode string

const (
	ModeSelection SessionMode = "selection"
	ModeGallery   SessionMode = "gallery"
)

type SelectionStatus string

const (
	SelectionPending    SelectionStatus = "pending"
	SelectionInProgress SelectionStatus = "in_progress"
	SelectionSubmitted  SelectionStatus = "submitted"
	SelectionDelivered  SelectionStatus = "delivered"
)

// Photo is one uploaded asset belonging to a session.
type Photo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// PhotoSession is one client engagement. The whole struct is persisted as a
// single document; every mutation is a read-modify-write of the full record.
type PhotoSession struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	Date                 time.Time       `json:"date"`
	AccessCode           string          `json:"accessCode"`
	Mode                 SessionMode     `json:"mode"`
	PackageLimit         int             `json:"packageLimit"`
	ExtraPhotoPrice      float64         `json:"extraPhotoPrice"`
	Photos               []Photo         `json:"photos"`
	SelectedPhotos       []string        `json:"selectedPhotos"`
	SelectionStatus      SelectionStatus `json:"selectionStatus"`
	SelectionSubmittedAt *time.Time      `json:"selectionSubmittedAt,omitempty"`
	DeliveredAt          *time.Time      `json:"deliveredAt,omitempty"`
	Watermark            bool            `json:"watermark"`
	CanShare             bool            `json:"canShare"`
	IsActive             bool            `json:"isActive"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func (s *PhotoSession) HasPhoto(photoID string) bool {
	for _, p := range s.Photos {
		if p.ID == photoID {
			return true
		}
	}
	return false
}

func (s *PhotoSession) IsSelected(photoID string) bool {
	for _, id := range s.SelectedPhotos {
		if id == photoID {
			return true
		}
	}
	return false
}

func (s *PhotoSession) Finalized() bool {
	return s.SelectionStatus == SelectionSubmitted || s.SelectionStatus == SelectionDelivered
}

// ApplySelection adds or removes photoID from the selection (set semantics,
// idempotent) and moves the status between pending and in_progress: the first
// selected photo starts the selection, emptying it reverts to pending.
// Returns true when this call started the selection.
func (s *PhotoSession) ApplySelection(photoID string, selected bool) bool {
	if selected {
		if !s.IsSelected(photoID) {
			s.SelectedPhotos = append(s.SelectedPhotos, photoID)
		}
	} else {
		kept := s.SelectedPhotos[:0]
		for _, id := range s.SelectedPhotos {
			if id != photoID {
				kept = append(kept, id)
			}
		}
		s.SelectedPhotos = kept
	}

	if s.SelectionStatus == SelectionPending && len(s.SelectedPhotos) > 0 {
		s.SelectionStatus = SelectionInProgress
		return true
	}
	if s.SelectionStatus == SelectionInProgress && len(s.SelectedPhotos) == 0 {
		s.SelectionStatus = SelectionPending
	}
	return false
}

// Submit locks the selection and returns the number of photos beyond the
// package limit. Guards (non-empty selection, not already finalized) are the
// caller's responsibility.
func (s *PhotoSession) Submit(now time.Time) int {
	s.SelectionStatus = SelectionSubmitted
	s.SelectionSubmittedAt = &now

	extras := len(s.SelectedPhotos) - s.PackageLimit
	if extras < 0 {
		extras = 0
	}
	return extras
}

// Reopen puts a submitted selection back in the client's hands.
func (s *PhotoSession) Reopen() {
	s.SelectionStatus = SelectionInProgress
	s.SelectionSubmittedAt = nil
}

// Deliver marks the session delivered and drops the watermark, whatever the
// prior status.
func (s *PhotoSession) Deliver(now time.Time) {
	s.SelectionStatus = SelectionDelivered
	s.DeliveredAt = &now
	s.Watermark = false
}

// RemovePhoto deletes the photo from the session and cascades into the
// selection so selectedPhotos stays a subset of photos.
func (s *PhotoSession) RemovePhoto(photoID string) (Photo, bool) {
	for i, p := range s.Photos {
		if p.ID != photoID {
			continue
		}
		s.Photos = append(s.Photos[:i], s.Photos[i+1:]...)

		kept := s.SelectedPhotos[:0]
		for _, id := range s.SelectedPhotos {
			if id != photoID {
				kept = append(kept, id)
			}
		}
		s.SelectedPhotos = kept
		return p, true
	}
	return Photo{}, false
}

// SelectedFilenames returns the storage filenames of the selected photos in
// upload order.
func (s *PhotoSession) SelectedFilenames() []string {
	filenames := make([]string, 0, len(s.SelectedPhotos))
	for _, p := range s.Photos {
		if s.IsSelected(p.ID) {
			filenames = append(filenames, p.Filename)
		}
	}
	return filenames
}
