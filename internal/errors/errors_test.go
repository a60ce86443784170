package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "not found",
			err:      fmt.Errorf("entry 7: %w", ErrNotFound),
			expected: "Error: no such entry (entry 7: not found)",
		},
		{
			name:     "cancelled",
			err:      Cancelled(context.Canceled),
			expected: "Error: operation cancelled, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to load %s", "database")
	if result != "Error: failed to load database" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestStorage(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if err := Storage("save entry", nil); err != nil {
			t.Errorf("Storage(nil) = %v, want nil", err)
		}
	})

	t.Run("driver error", func(t *testing.T) {
		cause := errors.New("disk I/O error")
		err := Storage("save entry", cause)
		if !errors.Is(err, ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("expected cause to be preserved, got %v", err)
		}
		if !strings.Contains(err.Error(), "save entry") {
			t.Errorf("expected operation in message, got %q", err.Error())
		}
	})

	t.Run("context error", func(t *testing.T) {
		err := Storage("list entries", context.DeadlineExceeded)
		if !errors.Is(err, ErrCancelled) {
			t.Errorf("expected ErrCancelled, got %v", err)
		}
		if errors.Is(err, ErrStorage) {
			t.Errorf("context errors must not be reported as storage failures")
		}
	})
}

func TestCheckContext(t *testing.T) {
	if err := CheckContext(context.Background()); err != nil {
		t.Errorf("CheckContext(background) = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := CheckContext(ctx)
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Errorf("CheckContext(cancelled) = %v, want ErrCancelled wrapping context.Canceled", err)
	}
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("mood %d out of range", 11)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err.Error() != "invalid argument: mood 11 out of range" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
