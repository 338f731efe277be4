package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidLane = errors.New("invalid lane")
	ErrOffline     = errors.New("offline")
)

// StoreError represents a failed task store operation
type StoreError struct {
	Op      string // Operation: "list", "update", etc.
	TaskID  string // Optional: specific task ID
	Message string // Human-readable context, shown to the user when present
	Err     error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.TaskID != "" {
		if e.Message != "" {
			return fmt.Sprintf("tasks %s [%s]: %s", e.Op, e.TaskID, e.Message)
		}
		if e.Err != nil {
			return fmt.Sprintf("tasks %s [%s]: %v", e.Op, e.TaskID, e.Err)
		}
		return fmt.Sprintf("tasks %s [%s] failed", e.Op, e.TaskID)
	}
	if e.Message != "" {
		return fmt.Sprintf("tasks %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("tasks %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("tasks %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PrefsError represents a failed preference store operation
type PrefsError struct {
	Op  string
	Key string
	Err error
}

func (e *PrefsError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("prefs %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("prefs %s: %v", e.Op, e.Err)
}

func (e *PrefsError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message to show a user for err. A StoreError's
// Message wins over the wrapped error text; fallback is used when nothing
// useful is available.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		if storeErr.Message != "" {
			return storeErr.Message
		}
		if storeErr.Err != nil && storeErr.Err.Error() != "" {
			return storeErr.Err.Error()
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
