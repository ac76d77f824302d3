package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// TableID identifies a stored table snapshot
type TableID ID

func (id TableID) String() string { return ID(id).String() }

// NewTableID creates a fresh table snapshot identifier
func NewTableID() TableID {
	return TableID(NewID())
}

// ParseTableID validates a string as a TableID. Only UUIDs are accepted.
func ParseTableID(s string) (TableID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("table ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid table ID %q: %w", s, err)
	}
	return TableID(s), nil
}
