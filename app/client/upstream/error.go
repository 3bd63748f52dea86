package upstream

import "fmt"

// Error is a non-success response from an external API. It carries the
// upstream status and body so handlers can surface them verbatim.
type Error struct {
	Service string
	Status  int
	Body    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Body)
}
