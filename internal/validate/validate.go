// Package validate holds the pure normalization rules for incoming
// payloads. Functions here never touch the database; existence and
// uniqueness checks belong to the service layer.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"tareas/internal/models"
)

var (
	ErrEmptyProjectName     = errors.New("project name must not be empty")
	ErrEmptyTaskDescription = errors.New("task description must not be empty")
)

// ProjectName trims surrounding whitespace and rejects empty results.
func ProjectName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyProjectName
	}
	return trimmed, nil
}

// TaskDescription trims surrounding whitespace and rejects empty results.
func TaskDescription(desc string) (string, error) {
	trimmed := strings.TrimSpace(desc)
	if trimmed == "" {
		return "", ErrEmptyTaskDescription
	}
	return trimmed, nil
}

// State checks a supplied state against the closed enumeration. The empty
// string means "omitted" and yields the create default, pending.
func State(raw string) (models.State, error) {
	if raw == "" {
		return models.StatePending, nil
	}
	s := models.State(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid state %q, must be one of pending, in_progress, done", raw)
	}
	return s, nil
}

// Priority checks a supplied priority against the closed enumeration. The
// empty string means "omitted" and yields the create default, medium.
func Priority(raw string) (models.Priority, error) {
	if raw == "" {
		return models.PriorityMedium, nil
	}
	p := models.Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q, must be one of low, medium, high", raw)
	}
	return p, nil
}

// Order normalizes a listing direction. Omitted defaults to ascending.
func Order(raw string) (string, error) {
	switch raw {
	case "":
		return "asc", nil
	case "asc", "desc":
		return raw, nil
	}
	return "", fmt.Errorf("invalid order %q, must be asc or desc", raw)
}
