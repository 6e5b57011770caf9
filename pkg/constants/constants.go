// Package constants provides shared constants used throughout the steamtrack codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to data providers
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the number of list rows per page in grids
	DefaultPageSize = 24

	// MaxSearchResults is the maximum number of rows kept from a search query
	MaxSearchResults = 250

	// MaxPins is the fixed capacity of the pinned-game comparison list.
	// Exceeding it is a rejected operation, not a silent eviction.
	MaxPins = 5

	// MaxSuggestions is the number of autocompletion suggestions returned
	MaxSuggestions = 8
)

// Refresh constants
const (
	// LiveRefreshInterval is the cadence for refreshing live player counts
	LiveRefreshInterval = 60 * time.Second
)
