package pipeline

import "fmt"

// ErrDuplicateID is returned when an element is added to a project that
// already contains a child with the same ID.
type ErrDuplicateID struct {
	ParentID string
	ID       string
	Kind     string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf(
		"%s IDs must be unique within a project but project %q already contains an element with ID %q",
		e.Kind, e.ParentID, e.ID,
	)
}
