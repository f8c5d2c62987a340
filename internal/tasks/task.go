// Package tasks provides the in-memory task store shared by the REST API and the brain.
package tasks

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("task not found")
)

// ValidationError reports an invalid or missing field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Task is a single to-do item.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// Normalize returns the lookup key for a description: trimmed and case-folded.
func Normalize(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// timestamp formats t as UTC RFC 3339 with a trailing Z.
func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}
