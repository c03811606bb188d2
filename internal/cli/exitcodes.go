package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdmath/internal/configloader"
	"github.com/yaklabco/gomdmath/pkg/fsutil"
)

// Exit codes for gomdmath.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitCheckFailed indicates --check found files that would change.
	ExitCheckFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrCheckFailed is returned when --check finds files that are not in
// canonical form.
var ErrCheckFailed = errors.New("check failed: files would change")

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// usageError marks err as a command-line usage error.
func usageError(err error) error {
	return withExitCode(ExitInvalidUsage, err)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrCheckFailed) {
		return ExitCheckFailed
	}

	var coded *exitError
	if errors.As(err, &coded) {
		return coded.code
	}

	var invalid *configloader.ValidationError
	if errors.As(err, &invalid) {
		return ExitConfigError
	}

	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
