// internal/swaps/swaps.go
package swaps

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aadashti/swap-manager/internal/executor"
	"github.com/aadashti/swap-manager/internal/units"
)

// /proc/swaps columns: Filename Type Size Used Priority. Size and Used are
// reported in KiB.
const (
	sizeCol     = 2
	usedCol     = 3
	minColCount = 5
)

// Summary aggregates the live swap table.
type Summary struct {
	Header     string
	Lines      []string
	TotalBytes uint64
	UsedBytes  uint64
}

// Read parses the live swap table. Lines with fewer than five fields are
// dropped; a malformed numeric field counts as zero rather than failing
// the whole read.
func Read(ctx context.Context, exec executor.Executor, tablePath string) (*Summary, error) {
	data, err := exec.ReadFile(ctx, tablePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", tablePath, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	s := &Summary{Header: lines[0]}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < minColCount {
			continue
		}
		sizeKiB, _ := strconv.ParseUint(fields[sizeCol], 10, 64)
		usedKiB, _ := strconv.ParseUint(fields[usedCol], 10, 64)
		s.TotalBytes += sizeKiB * 1024
		s.UsedBytes += usedKiB * 1024
		s.Lines = append(s.Lines, line)
	}
	return s, nil
}

// Show prints the swap table verbatim followed by a human-readable total.
func Show(ctx context.Context, exec executor.Executor, tablePath string, w io.Writer) error {
	s, err := Read(ctx, exec, tablePath)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s.Header)
	for _, line := range s.Lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nTotal: %s used / %s total\n",
		units.FormatBytes(s.UsedBytes), units.FormatBytes(s.TotalBytes))
	return nil
}
