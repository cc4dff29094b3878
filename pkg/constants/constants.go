// Package constants provides shared constants used throughout the georecon codebase.
// This includes file permissions, default file names, and the sentinel and scoring
// values that must stay consistent between the matcher, the engine and the writers.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file names for inputs and artifacts.
const (
	// DefaultContinentsFile is the JSON reference table produced by ingestion
	DefaultContinentsFile = "continents.json"

	// DefaultBordersFile is the border dataset enriched by continent resolution
	DefaultBordersFile = "country-borders.json"

	// DefaultCodesFile is the UNSD name -> code table used for map labels
	DefaultCodesFile = "UNSD.csv"

	// DefaultReportFile is where unresolved matches are written for review
	DefaultReportFile = "failed_matches.json"

	// DefaultMapOutputFile is the relabeled SVG map
	DefaultMapOutputFile = "modified-world-map.svg"

	// DefaultOverlayFile is the curated exception overlay
	DefaultOverlayFile = "overlay.yaml"
)

// Reference table layout
const (
	// CodesDelimiter is the field separator of the UNSD code table
	CodesDelimiter = ';'

	// CodesNameColumn is the UNSD column holding the display name
	CodesNameColumn = "Country or Area"

	// CodesAlpha2Column is the UNSD column holding the ISO alpha-2 code
	CodesAlpha2Column = "ISO-alpha2 Code"

	// WorkbookHeaderRow is the zero-based row holding column names in each
	// continent sheet; the row above it is a sheet title.
	WorkbookHeaderRow = 1
)

// Scoring bounds for fuzzy similarity
const (
	// MinScore is the similarity of two strings with nothing in common
	MinScore = 0

	// MaxScore is the similarity of identical strings
	MaxScore = 100
)

// Default values
const (
	// DefaultWorkers runs reconciliation sequentially
	DefaultWorkers = 1
)
