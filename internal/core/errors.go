package core

import "errors"

// Error kinds returned by the customer service. Match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("customer not found")
	ErrNoSuchElement   = errors.New("customer not found with name and email")
)

// InvalidArgumentError reports caller input that failed a validation rule.
// Message is safe to show to API clients verbatim.
type InvalidArgumentError struct {
	Message string
}

func invalidArgument(msg string) error {
	return &InvalidArgumentError{Message: msg}
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// LookupError reports that a lookup returned no record. Kind is ErrNotFound
// for id, name and email lookups and ErrNoSuchElement for the combined
// name and email lookup. Key describes what was looked up.
type LookupError struct {
	Kind error
	Key  string
}

func (e *LookupError) Error() string {
	if e.Key == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Key
}

func (e *LookupError) Unwrap() error { return e.Kind }
