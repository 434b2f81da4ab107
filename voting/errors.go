package voting

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation              = errors.New("validation failed")
	ErrUnauthorized            = errors.New("admin session required")
	ErrNominationResolved      = errors.New("nomination is already resolved")
	ErrNominationClosed        = errors.New("nomination is no longer open for votes")
	ErrPendingNominationExists = errors.New("person already has a pending nomination")
	ErrNotReversible           = errors.New("point entry cannot be reversed")
)

// ValidationError carries one message per offending field, keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
