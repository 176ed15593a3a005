package depgraph

import (
	"fmt"
	"strings"
)

// TopologyError reports resources that nest each other and therefore cannot
// be emitted in any order.
type TopologyError struct {
	// Unresolved lists every node left unordered, in insertion order.
	Unresolved []string
	// Cycle is one offending cycle in which each resource nests the next,
	// first node repeated at the end.
	Cycle []string
}

// Error returns the error string.
func (e *TopologyError) Error() string {
	msg := fmt.Sprintf("dependency cycle between resources: %s", strings.Join(e.Unresolved, ", "))
	if len(e.Cycle) > 0 {
		msg += " (" + strings.Join(e.Cycle, " -> ") + ")"
	}

	return msg
}
