// Package vfs implements the in-memory virtual filesystem: the node tree,
// path resolution, the manifest loader and the operations the shell
// dispatches against it.
//
// This file contains error types and error handling utilities.
package vfs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by filesystem operations. Callers match them
// with errors.Is after unwrapping.
var (
	// ErrNotFound indicates the path does not resolve to a node
	ErrNotFound = errors.New("no such file or directory")

	// ErrNotDirectory indicates a directory operation hit a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFile indicates a file operation hit a directory
	ErrNotFile = errors.New("not a file")

	// ErrInvalidMode indicates an unparseable mode specification
	ErrInvalidMode = errors.New("invalid mode format")

	// ErrNotEmpty indicates a non-recursive remove of a non-empty directory
	ErrNotEmpty = errors.New("directory not empty")

	// ErrRemoveRoot indicates an attempt to remove the root directory
	ErrRemoveRoot = errors.New("cannot remove root")

	// ErrDecode indicates stored content could not be base64-decoded
	ErrDecode = errors.New("content is not valid base64")
)

// Error wraps an operation failure with the operation name and the
// affected path so the shell can render "<verb>: <message>" lines.
type Error struct {
	Op   string // Operation that failed (e.g. "ls", "chmod")
	Path string // Affected path as the caller supplied it
	Err  error  // Underlying sentinel or wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

func opErr(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}

// Common operation names used in wrapped errors
const (
	OpLs    = "ls"
	OpCd    = "cd"
	OpTree  = "tree"
	OpChmod = "chmod"
	OpRm    = "rm"
	OpRead  = "read"
)

// LoadError is the only fatal error class: the manifest could not be read
// or its rows describe an inconsistent tree. Construction aborts and no
// filesystem instance is produced.
type LoadError struct {
	Source string // manifest path or name
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("manifest load failed: %v", e.Err)
	}
	return fmt.Sprintf("manifest %s: load failed: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
