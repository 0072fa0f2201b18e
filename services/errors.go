package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// FieldErrors maps a request field to what is wrong with it. Handlers turn it
// into a 400 with an "errors" object.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has an error.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err returns e as an error, or nil when empty.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// DuplicateAs reports a unique-key violation as a field error on field.
// Other errors are returned unchanged.
func DuplicateAs(err error, field string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return FieldErrors{field: "already exists"}
	}
	return err
}

// Page is a validated page request.
type Page struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}
