package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrNotTrainer         = errors.New("only trainers can access this endpoint")
	ErrMissingCredentials = errors.New("login and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileExists      = errors.New("profile already exists for this account")
)

// FieldErrors maps request fields to the first validation message raised
// for them.
type FieldErrors map[string]string

// Add records msg for field unless an earlier message is already present.
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = msg
}

func (e FieldErrors) Has(field string) bool {
	_, exists := e[field]
	return exists
}

// Merge copies other under prefix, keeping existing entries.
func (e FieldErrors) Merge(prefix string, other FieldErrors) {
	for field, msg := range other {
		if prefix != "" {
			field = prefix + "." + field
		}
		e.Add(field, msg)
	}
}

// Err returns nil when nothing was recorded.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
