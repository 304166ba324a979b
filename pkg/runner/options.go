// Package runner measures many inputs concurrently.
package runner

import (
	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/decompress"
)

// Options controls a measurement run.
type Options struct {
	// Paths are the files or directories to measure. "-" is standard input.
	// If empty, defaults to DefaultInput in WorkingDir.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions selects files when a directory is walked (lowercase, with
	// leading dot). Files named explicitly are measured whatever their extension.
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, for files and
	// directories to skip. "**" matches across directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Mode selects the calculators. Empty means config.ModeBoth.
	Mode config.Mode

	// Limits bounds the recursive calculator.
	Limits decompress.Limits
}

// DefaultInput is measured when no paths are given.
const DefaultInput = "input.txt"

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{DefaultInput}
	}
	return o.Paths
}

func (o Options) effectiveMode() config.Mode {
	if o.Mode == "" {
		return config.ModeBoth
	}
	return o.Mode
}
