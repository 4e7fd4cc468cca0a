package chores

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStoreBusy is returned when a submission cannot acquire the write lock
// within the configured wait. Nothing was committed; the caller may retry.
var ErrStoreBusy = errors.New("store busy: could not acquire write lock")

// UnknownTaskError rejects a whole submission batch that references tasks
// outside the active definition set. No partial application: none of the
// batch is committed.
type UnknownTaskError struct {
	Tasks []string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown tasks: %s", strings.Join(e.Tasks, ", "))
}
