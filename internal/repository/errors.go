package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a caller-supplied id is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrReference matches every *ReferenceError through errors.Is.
	ErrReference = errors.New("reference integrity violation")
)

// ReferenceError reports a foreign reference (owner or song) that does not resolve.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("referenced %s does not exist", e.Entity)
	}
	return fmt.Sprintf("%s %q does not exist", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrReference) match any ReferenceError.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

func missingUser(id string) error {
	return &ReferenceError{Entity: "user", ID: id}
}

func missingSong(id string) error {
	return &ReferenceError{Entity: "song", ID: id}
}
