package ffmpeg

import (
	"fmt"

	"github.com/framefuse/framefuse/internal/config"
)

// EncodeError is a terminal encoding failure: the last attempt's mode, its
// cause, and the captured diagnostic output. A timed-out attempt carries
// TimedOut instead of a process exit error.
type EncodeError struct {
	Mode     config.AccelMode
	TimedOut bool
	Stderr   string
	Err      error
}

func (e *EncodeError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("encoding timed out (mode %s)", e.Mode)
	}
	return fmt.Sprintf("encoding failed (mode %s): %v", e.Mode, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
