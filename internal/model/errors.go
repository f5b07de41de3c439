package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation references a missing item id.
var ErrNotFound = errors.New("not found")

// InvalidActionError is returned when an unrecognized lifecycle action is
// applied to an item.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q", e.Action)
}

// ValidationError is returned when required creation fields are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
