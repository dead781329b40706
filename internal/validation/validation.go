// Package validation holds the pure field-presence checks applied to incoming
// payloads before any database work. Each function returns a field -> message
// mapping and whether the payload passed. No type coercion, no cross-field
// rules, no side effects.
package validation

import "strings"

type Errors map[string]string

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
