package shared

import "fmt"

// StorageError reports that an atomic unit could not be completed for a reason
// outside the domain rules: connectivity, lock or statement timeouts,
// serialization conflicts, failed commits or a cancelled context. The caller
// decides whether to retry.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
