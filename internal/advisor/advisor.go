// internal/advisor/advisor.go
package advisor

import (
	"context"
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aadashti/swap-manager/internal/units"
)

const (
	mib = 1 << 20
	gib = 1 << 30
)

// RecommendedSize applies the usual swap sizing rule: double the RAM on
// small hosts, match it up to 8 GiB, half of it beyond that.
func RecommendedSize(ramBytes uint64) uint64 {
	switch {
	case ramBytes <= 2*gib:
		return 2 * ramBytes
	case ramBytes <= 8*gib:
		return ramBytes
	default:
		return ramBytes / 2
	}
}

// SizeToken renders a byte count as a token 'set' accepts, rounded up to a
// whole MiB and collapsed to GiB when exact.
func SizeToken(bytes uint64) string {
	m := (bytes + mib - 1) / mib
	if m != 0 && m%1024 == 0 {
		return fmt.Sprintf("%dG", m/1024)
	}
	return fmt.Sprintf("%dM", m)
}

// Show prints the host's memory situation and a suggested swap size.
func Show(ctx context.Context, w io.Writer) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return fmt.Errorf("reading memory info: %w", err)
	}
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return fmt.Errorf("reading swap info: %w", err)
	}

	rec := RecommendedSize(vm.Total)
	fmt.Fprintf(w, "RAM:  %s installed\n", units.FormatBytes(vm.Total))
	fmt.Fprintf(w, "Swap: %s used / %s total\n", units.FormatBytes(sw.Used), units.FormatBytes(sw.Total))
	fmt.Fprintf(w, "Recommended swap size: %s\n", units.FormatBytes(rec))
	fmt.Fprintf(w, "Apply with: swap-manager set %s --replace --persist\n", SizeToken(rec))
	return nil
}
