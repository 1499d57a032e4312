package fileutil

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/harrison/lff/internal/models"
)

// Find walks root and returns the final listing: filtered, sorted per
// opts.Sort and truncated to opts.Limit.
//
// With a sort requested the result holds the true top Limit records. Without
// one it holds at most Limit records out of whatever the walk produced.
func Find(root string, opts *models.WalkOptions, logger Logger) ([]models.FileRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid walk options: %w", err)
	}

	records, err := Walk(root, opts, logger)
	if err != nil {
		return nil, err
	}

	SortRecords(records, opts.Sort)
	return Truncate(records, opts.Limit), nil
}

// SortRecords orders records in place.
// SortSize is descending by size, SortName ascending by bytewise name, and
// SortNone leaves the slice untouched. Both sorts are stable.
func SortRecords(records []models.FileRecord, method models.SortMethod) {
	switch method {
	case models.SortSize:
		slices.SortStableFunc(records, func(a, b models.FileRecord) int {
			return cmp.Compare(b.Size, a.Size)
		})
	case models.SortName:
		slices.SortStableFunc(records, func(a, b models.FileRecord) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
}

// Truncate returns at most *limit records. A nil limit keeps everything.
func Truncate(records []models.FileRecord, limit *int) []models.FileRecord {
	if limit == nil || *limit < 0 || len(records) <= *limit {
		return records
	}
	return records[:*limit]
}
