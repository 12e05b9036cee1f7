package service

import "errors"

// Client-facing failure taxonomy for the selection workflow. Handlers map
// these to HTTP statuses; anything else is an internal error.
var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrForbidden         = errors.New("access code mismatch")
	ErrInvalidMode       = errors.New("session is not in selection mode")
	ErrAlreadyFinalized  = errors.New("selection already finalized")
	ErrEmptySelection    = errors.New("no photos selected")
	ErrInvalidTransition = errors.New("invalid selection state transition")
)
