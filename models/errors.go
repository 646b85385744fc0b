package models

import "strings"

// ValidationError collects every rule violated by a create or update input,
// so a caller sees all problems at once instead of fixing them one by one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *ValidationError) add(msg string) {
	e.Violations = append(e.Violations, msg)
}

func (e *ValidationError) hasViolations() bool {
	return len(e.Violations) > 0
}
