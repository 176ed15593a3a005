package typedesc

import "fmt"

// ParseError reports malformed raw type syntax for one field.
type ParseError struct {
	Resource string
	Field    string
	Raw      string
	Reason   string
}

// Error returns the error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s.%s: invalid type %q: %s", e.Resource, e.Field, e.Raw, e.Reason)
}
