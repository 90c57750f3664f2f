package db

import (
	"fmt"

	"github.com/lib/pq"
)

// DuplicateUserErr is returned by CreateUser when the username is already
// registered. The existing record is left untouched.
type DuplicateUserErr struct {
	Username string
}

func (err *DuplicateUserErr) Error() string {
	return fmt.Sprintf("user already exists: %s", err.Username)
}

// UnknownReferenceErr is returned when an operation references a user or post
// this backend has no record of. The operation has no side effects.
type UnknownReferenceErr struct {
	Kind string // "user" or "post"
	Ref  string
}

func (err *UnknownReferenceErr) Error() string {
	return fmt.Sprintf("unknown %s: %s", err.Kind, err.Ref)
}

func IsNonUniqueErr(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return true
	}
	return false
}

func isFkViolationErr(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return true
	}
	return false
}
