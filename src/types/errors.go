package types

import "errors"

// Every engine operation fails with exactly one of these kinds. Storage
// errors never leak past src/common; duplicate-key violations become
// ErrConflict.
var (
	ErrUnauthorized      = errors.New("not authorized for this action")
	ErrNotFound          = errors.New("resource not found")
	ErrNoSupervisor      = errors.New("employee has no supervisor assigned")
	ErrPoolNotConfigured = errors.New("no pool configured for this floor and date")
	ErrSeatNotEnabled    = errors.New("seat is not enabled in this pool")
	ErrConflict          = errors.New("seat already reserved or employee already holds a reservation for this date")
)
