// internal/units/units.go
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrOverflow is returned when a size token multiplies past the uint64 range.
var ErrOverflow = errors.New("size overflow")

var multipliers = map[byte]uint64{
	'K': 1024,
	'M': 1024 * 1024,
	'G': 1024 * 1024 * 1024,
	'T': 1024 * 1024 * 1024 * 1024,
}

// ParseSize converts a human size token like "512M" or "5G" into bytes.
// The suffix is case-insensitive and selects a power-of-1024 multiplier;
// a token ending in a digit is taken as plain bytes. Decimals are rejected.
func ParseSize(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty size")
	}
	upper := strings.ToUpper(s)
	last := upper[len(upper)-1]

	var numStr string
	var mult uint64
	switch {
	case last >= '0' && last <= '9':
		numStr, mult = upper, 1
	default:
		m, ok := multipliers[last]
		if !ok {
			return 0, fmt.Errorf("unknown size suffix in %q: use K/M/G/T or plain bytes", s)
		}
		numStr, mult = upper[:len(upper)-1], m
	}

	if numStr == "" {
		return 0, fmt.Errorf("malformed size: %q", s)
	}
	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing numeric part of size %q: %w", s, err)
	}
	if n != 0 && n > math.MaxUint64/mult {
		return 0, fmt.Errorf("%q: %w", s, ErrOverflow)
	}
	return n * mult, nil
}

// FormatBytes renders n with base-1024 scaling, two decimal places except
// for plain bytes: 0 -> "0 B", 1536 -> "1.50 KiB".
func FormatBytes(n uint64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	val := float64(n)
	idx := 0
	for val >= 1024 && idx+1 < len(units) {
		val /= 1024
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d %s", n, units[0])
	}
	return fmt.Sprintf("%.2f %s", val, units[idx])
}
