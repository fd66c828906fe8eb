// Package validation validates registration and login input. Struct
// shape checks run through the validator library; the password policy
// is an ordered list of independent rules that are all reported
// together rather than short-circuited.
package validation

import (
	"sort"
	"strings"
)

// Errors collects field violations, keyed by json field name. It
// implements error so services can return it directly.
type Errors map[string][]string

// Add appends a violation message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
