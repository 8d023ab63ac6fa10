package platform

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random customer ID.
func NewID() string {
	return uuid.New().String()
}

// ParseID checks that s is a UUID and returns it in canonical lowercase form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid customer ID %q", s)
	}
	return id.String(), nil
}
