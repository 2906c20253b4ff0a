package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Error carries field-level validation failures, keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	slices.Sort(msgs)
	return strings.Join(msgs, "; ")
}

// Accepted vintage range. Cashflow years share it.
const (
	MinYear = 1900
	MaxYear = 2200
)

func validYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}
