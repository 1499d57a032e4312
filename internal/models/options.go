package models

import (
	"fmt"
	"math"
	"strings"
)

// BytesPerMiB is the size of one mebibyte.
const BytesPerMiB = 1024 * 1024

// SortMethod selects the order of the final listing.
type SortMethod int

const (
	// SortNone leaves records in traversal order, which is unspecified.
	SortNone SortMethod = iota
	// SortSize orders records by descending size.
	SortSize
	// SortName orders records by ascending name.
	SortName
)

// String returns the flag spelling of the sort method.
func (s SortMethod) String() string {
	switch s {
	case SortSize:
		return "size"
	case SortName:
		return "name"
	default:
		return "none"
	}
}

// ParseSortMethod converts a flag or config value into a SortMethod.
// The empty string means no sorting.
func ParseSortMethod(value string) (SortMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SortNone, nil
	case "size":
		return SortSize, nil
	case "name":
		return SortName, nil
	default:
		return SortNone, fmt.Errorf("invalid sort method %q, must be one of: none, size, name", value)
	}
}

// WalkOptions is the resolved filter and limit configuration for one walk.
// It is shared read-only by every goroutine of the walk.
type WalkOptions struct {
	// MinSizeBytes is the smallest size a file may have to be retained
	MinSizeBytes uint64
	// Extension keeps only files whose extension equals it exactly (nil = any)
	Extension *string
	// NamePattern keeps only files whose name matches the glob (nil = any)
	NamePattern *string
	// ExcludeHidden drops hidden files and prunes hidden directories
	ExcludeHidden bool
	// Limit caps the number of records in the final listing (nil = unlimited)
	Limit *int
	// Absolute reports canonical absolute paths instead of the walked ones
	Absolute bool
	// Sort is the order requested for the final listing
	Sort SortMethod
	// Workers bounds concurrent filesystem calls (0 = number of CPUs)
	Workers int
}

// MiBToBytes converts a size in mebibytes to a byte threshold.
// The result is rounded up so that size >= MiBToBytes(m) holds exactly when
// size/BytesPerMiB >= m. Negative and NaN sizes yield zero.
func MiBToBytes(mib float64) uint64 {
	if math.IsNaN(mib) || mib <= 0 {
		return 0
	}
	bytes := math.Ceil(mib * BytesPerMiB)
	if bytes >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(bytes)
}

// EarlyExitAllowed reports whether the walk may stop producing records once
// Limit records exist. Sorting needs every candidate, so it never may then.
func (o *WalkOptions) EarlyExitAllowed() bool {
	return o.Limit != nil && o.Sort == SortNone
}

// Validate checks the options for values the walker cannot honour.
func (o *WalkOptions) Validate() error {
	if o.Limit != nil && *o.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", *o.Limit)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	return nil
}
