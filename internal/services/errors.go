package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is returned when an entity or a referenced entity does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalid is returned for payloads the store refuses, such as a blank name
var ErrInvalid = errors.New("invalid input")

// ErrInUse is returned when deleting an entity other records still depend on
var ErrInUse = errors.New("still in use")

// ReferenceError lists referenced ids that do not exist. It matches ErrNotFound.
type ReferenceError struct {
	Kind string
	IDs  []int64
}

func (e *ReferenceError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s IDs not found: [%s]", e.Kind, strings.Join(ids, ", "))
}

func (e *ReferenceError) Unwrap() error {
	return ErrNotFound
}

// missingIDs returns the wanted ids absent from found, sorted
func missingIDs(wanted, found []int64) []int64 {
	var missing []int64
	for _, id := range wanted {
		if !slices.Contains(found, id) && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return missing
}

func checkName(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalid, field)
	}
	return nil
}

func checkPrice(field string, value *float64) error {
	if value != nil && *value < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
	}
	return nil
}
