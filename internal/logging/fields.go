package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration.
	FieldMode   = "mode"
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldLimit  = "limit"

	// Measurement.
	FieldVersion    = "version"
	FieldLength     = "length"
	FieldCompressed = "compressed"
	FieldMarkers    = "markers"
	FieldDepth      = "depth"
	FieldOffset     = "offset"
	FieldCodec      = "codec"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldInputsMeasured  = "inputs_measured"
	FieldInputsFailed    = "inputs_failed"
	FieldElapsed         = "elapsed"

	// Build information.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
