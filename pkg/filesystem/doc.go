// Package filesystem provides the filesystem used by every snortamv component.
//
// Components receive an afero.Fs so tests can run against an in-memory tree.
// Mutations that replace a file go through WriteFileAtomic, which writes a
// hidden temporary file in the destination directory and renames it into
// place, so a failed write never leaves a truncated rule file behind.
package filesystem
