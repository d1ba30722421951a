package addressbook

import "fmt"

// ValidationError reports a raw value rejected by a field validator.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an operation on a contact or phone that does not exist.
type NotFoundError struct {
	Reason string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Key)
}
