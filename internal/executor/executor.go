// internal/executor/executor.go
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Executor abstracts the host the tool mutates: spawning utilities and
// touching files. Everything privileged goes through this interface so the
// orchestration logic can be tested against a mock.
type Executor interface {
	Run(ctx context.Context, cmd string) (string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error
	AppendFile(ctx context.Context, path string, content []byte) error
	Remove(ctx context.Context, path string) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// CommandError reports a spawned utility that exited non-zero.
type CommandError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit %d", e.Cmd, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExitCode extracts the exit status from an executor error, or -1 when the
// error did not come from a utility exiting non-zero.
func ExitCode(err error) int {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return -1
}
