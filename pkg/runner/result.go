package runner

import "github.com/yaklabco/gomdmath/pkg/mdast"

// FileResult is what a ProcessFunc reports for one file.
type FileResult struct {
	// Blocks are the math blocks found in the file.
	Blocks []*mdast.Node

	// Output is the produced content: rendered HTML, or the rewritten
	// document for fmt and convert.
	Output []byte

	// Changed reports whether a rewrite differs from the input.
	Changed bool

	// Written reports whether the rewrite was saved to disk.
	Written bool

	// Skipped counts blocks that were left alone because they could not be
	// rewritten without changing their value.
	Skipped int
}

// FileOutcome wraps a FileResult with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file encountered an error.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose rewrite differs from the input.
	FilesChanged int

	// FilesWritten is the number of files saved to disk.
	FilesWritten int

	// BlocksTotal is the number of math blocks across all files.
	BlocksTotal int

	// BlocksSkipped is the number of blocks left alone.
	BlocksSkipped int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file's rewrite differs from its input.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BlocksTotal += len(outcome.Result.Blocks)
	r.Stats.BlocksSkipped += outcome.Result.Skipped

	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
}
