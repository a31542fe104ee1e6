package export

import (
	"fmt"
	"strings"
)

// Format selects how much detail the document carries.
type Format string

const (
	// FormatDetailed is the standard document.
	FormatDetailed Format = "detailed"
	// FormatForensic adds numeric frames, window levels, fingerprints and
	// the raw attribute dump.
	FormatForensic Format = "forensic"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "detailed":
		return FormatDetailed, nil
	case "forensic":
		return FormatForensic, nil
	default:
		return FormatDetailed, fmt.Errorf("unknown export format: %q (expected detailed or forensic)", s)
	}
}
