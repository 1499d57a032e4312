// Package fileutil implements the parallel directory walk behind lff.
//
// The package turns a start directory and a models.WalkOptions into a flat
// list of models.FileRecord values, one per regular file that passes every
// active filter.
//
// # Main Components
//
// Inspect - builds the record for one path:
//   - Name: the path as given, or its canonical absolute form (Absolute)
//   - Extension: text after the last '.' of the final segment
//   - Size: taken from os.Lstat, so symlinks are never followed
//   - Hidden: final segment starts with '.'
//
// Walk - the recursive traversal:
//   - Entries of each directory are handled in their own goroutines
//   - Subdirectories are descended in parallel with their siblings
//   - Filesystem calls are bounded by a weighted semaphore (Workers)
//   - Each level merges the fragments of its entries once, after all finish
//
// Find - the caller pipeline: Walk, then SortRecords, then Truncate.
//
// # Usage Examples
//
// Largest ten Go files under the current directory:
//
//	ext := "go"
//	limit := 10
//	records, err := fileutil.Find(".", &models.WalkOptions{
//	    Extension: &ext,
//	    Limit:     &limit,
//	    Sort:      models.SortSize,
//	}, nil)
//	if err != nil {
//	    return err
//	}
//
// Any five files over 100 MiB, stopping early:
//
//	limit := 5
//	records, err := fileutil.Find("/data", &models.WalkOptions{
//	    MinSizeBytes: models.MiBToBytes(100),
//	    Limit:        &limit,
//	}, logger)
//
// # Error Handling
//
// Fatal errors end the walk and reach the caller unchanged:
//   - ErrRootUnreadable: the start directory cannot be opened or listed
//   - ErrMetadata / ErrCanonicalize: a single file could not be inspected
//   - ErrReadDir: an opened directory failed during enumeration
//   - ErrInvalidPattern: the name pattern is not a valid glob; reported
//     before any directory is opened
//
// A subdirectory that cannot be opened is not an error. It is skipped and
// logged at debug level.
//
// When several entries fail at once, the first error observed wins. Sibling
// goroutines that are already running finish; their results are discarded.
//
// # Early Exit
//
// With a Limit and no sort, entries stop contributing once Limit records have
// been retained anywhere in the tree. The check and the increment are not
// atomic together, so concurrent goroutines may overshoot the bound. Find
// truncates the merged result, so the listing never exceeds Limit.
package fileutil
