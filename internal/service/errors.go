package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"order-desk/internal/repository"
)

var ErrNotFound = repository.ErrNotFound

var (
	ErrDecode     = errors.New("decode")
	ErrValidation = errors.New("validation")
)

var (
	ErrNothingPending = errors.New("no deletion pending")
	ErrNoSurface      = errors.New("print surface not available")
)

// ValidationErrors carries the field-keyed messages of a rejected draft.
type ValidationErrors struct {
	Fields map[string]string
}

func (e *ValidationErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, e.Fields[k])
	}
	return b.String()
}

func (e *ValidationErrors) Unwrap() error { return ErrValidation }

// ItemCodeError is shown next to the item code input.
type ItemCodeError struct {
	Code    string
	Message string
}

func (e *ItemCodeError) Error() string { return e.Message }
func (e *ItemCodeError) Unwrap() error { return ErrValidation }

// ItemNameError is a blocking alert rather than a field error.
type ItemNameError struct {
	Message string
}

func (e *ItemNameError) Error() string { return e.Message }
func (e *ItemNameError) Unwrap() error { return ErrValidation }
