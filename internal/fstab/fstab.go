// internal/fstab/fstab.go
package fstab

import (
	"context"
	"fmt"
	"strings"

	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/ui"
)

// Line returns the canonical boot-time entry for a swapfile.
func Line(swapPath string) string {
	return fmt.Sprintf("%s none swap sw 0 0\n", swapPath)
}

// Ensure appends the swap entry for swapPath to the mount table unless the
// exact line is already present. The check is raw byte containment, so a
// line that differs only in whitespace counts as absent and is appended
// again. An unreadable table is treated as empty, not as an error.
func Ensure(ctx context.Context, exec executor.Executor, swapPath, fstabPath string) error {
	line := Line(swapPath)

	existing, err := exec.ReadFile(ctx, fstabPath)
	if err != nil {
		existing = nil
	}
	if strings.Contains(string(existing), line) {
		ui.Skip(fmt.Sprintf("%s already contains the same entry, skipping append", fstabPath))
		return nil
	}

	if err := exec.AppendFile(ctx, fstabPath, []byte(line)); err != nil {
		return fmt.Errorf("appending to %s: %w", fstabPath, err)
	}
	ui.Success(fmt.Sprintf("Appended to %s: %s", fstabPath, strings.TrimSpace(line)))
	return nil
}
