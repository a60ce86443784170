package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodlog/internal/logger"
)

var (
	// ErrInvalidArgument is returned for nil or malformed input rejected before any I/O
	ErrInvalidArgument = stderrors.New("invalid argument")
	// ErrCancelled is returned when the caller's context was cancelled or timed out
	ErrCancelled = stderrors.New("operation cancelled")
	// ErrNotFound is used by hosts to report a missing entry
	ErrNotFound = stderrors.New("not found")
	// ErrStorage wraps failures of the backing database file
	ErrStorage = stderrors.New("storage failure")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Storage wraps err as a storage failure of the named operation.
// Context errors are reported as ErrCancelled instead.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return Cancelled(err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Cancelled wraps a context error as ErrCancelled
func Cancelled(err error) error {
	if stderrors.Is(err, ErrCancelled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// CheckContext returns ErrCancelled if ctx is already done
func CheckContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Cancelled(err)
	}
	return nil
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case stderrors.Is(err, ErrNotFound):
		return fmt.Sprintf("Error: no such entry (%v)", err)
	case stderrors.Is(err, ErrCancelled):
		return "Error: operation cancelled, please try again"
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
