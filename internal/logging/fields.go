// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	// Configuration fields.
	FieldEngine   = "engine"
	FieldFlavor   = "flavor"
	FieldMarker   = "marker"
	FieldMinFence = "min_fence"
	FieldJobs     = "jobs"
	FieldWrite    = "write"
	FieldCheck    = "check"
	FieldDetect   = "detect"
	FieldConfig   = "config"

	// Block fields.
	FieldLine        = "line"
	FieldFenceLength = "fence_length"
	FieldLanguage    = "language"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldBlocksTotal     = "blocks_total"
	FieldBlocksSkipped   = "blocks_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
