// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"strings"
)

// ValidationError is a single invalid configuration field.
type ValidationError struct {
	Field   string // config key, e.g. "log.level"
	Value   any    // offending value
	Message string
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid field found by Validate.
type ValidationErrors []ValidationError

// Error implements error.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}

	return sb.String()
}
