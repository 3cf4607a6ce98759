package interfaces

import "errors"

// Repository implementations wrap these so the usecases can tell a rejected
// row apart from an infrastructure failure.
var (
	// ErrConflict: a uniqueness guard (customer identity, natural key) refused the write.
	ErrConflict = errors.New("persistence conflict")
	// ErrRejected: the store refused the record itself (validation, encoding).
	ErrRejected = errors.New("persistence rejected record")
)
