// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row addressed by its key does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the unique email
// constraint is violated. Handlers translate it into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when inserting a row that already exists under a
// unique or composite key (e.g. linking a genre to a poster twice).
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
