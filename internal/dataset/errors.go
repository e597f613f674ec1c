package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrDatasetUnavailable reports that the dataset file could not be located or opened.
	// It is terminal: no query can succeed without the file.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrQueryFailed reports a malformed statement or an execution error.
	// It is scoped to the failing query only.
	ErrQueryFailed = errors.New("query failed")
)

// UnavailableError carries the expected dataset location.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	if errors.Is(e.Err, os.ErrNotExist) {
		return fmt.Sprintf("Database file not found. Please ensure '%s' is in the assets folder: %s",
			filepath.Base(e.Path), filepath.Dir(e.Path))
	}
	return fmt.Sprintf("dataset %s could not be opened: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is matches ErrDatasetUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrDatasetUnavailable
}

// QueryError wraps a failure of a named query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is matches ErrQueryFailed.
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}
