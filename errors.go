package memns

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
)

var (
	// ErrPathNotFound indicates the parent directory (or a stream's main file) is missing
	ErrPathNotFound = errors.New("path not found")

	// ErrNameNotFound indicates the target itself is missing
	ErrNameNotFound = errors.New("name not found")

	// ErrNameCollision indicates the destination exists and replacing was not requested
	ErrNameCollision = errors.New("name collision")

	// ErrAccessDenied indicates a read-only destination or a forbidden directory replace
	ErrAccessDenied = errors.New("access denied")
)

// Error wraps a namespace error with the operation and path that produced it
type Error struct {
	Op   string // Operation that failed (e.g., "add", "move")
	Path string // Affected path
	Err  error  // One of the sentinel errors above
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError is a shorthand for building an [Error]
func NewError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}

// NTStatus is the status convention of Windows user-mode filesystem hosts
// (Dokan, WinFsp).
type NTStatus uint32

const (
	StatusSuccess             NTStatus = 0x00000000
	StatusAccessDenied        NTStatus = 0xC0000022
	StatusObjectNameNotFound  NTStatus = 0xC0000034
	StatusObjectNameCollision NTStatus = 0xC0000035
	StatusObjectPathNotFound  NTStatus = 0xC000003A
	StatusInternalError       NTStatus = 0xC00000E5
)

// ToNTStatus translates a namespace error into its NTSTATUS code.
// nil maps to StatusSuccess; unknown errors to StatusInternalError.
func ToNTStatus(err error) NTStatus {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrPathNotFound):
		return StatusObjectPathNotFound
	case errors.Is(err, ErrNameNotFound):
		return StatusObjectNameNotFound
	case errors.Is(err, ErrNameCollision):
		return StatusObjectNameCollision
	case errors.Is(err, ErrAccessDenied):
		return StatusAccessDenied
	default:
		return StatusInternalError
	}
}

// ToFuseStatus translates a namespace error into the errno a FUSE callback
// layer replies with.
func ToFuseStatus(err error) fuse.Status {
	switch {
	case err == nil:
		return fuse.OK
	case errors.Is(err, ErrPathNotFound), errors.Is(err, ErrNameNotFound):
		return fuse.ENOENT
	case errors.Is(err, ErrNameCollision):
		return fuse.Status(syscall.EEXIST)
	case errors.Is(err, ErrAccessDenied):
		return fuse.EACCES
	default:
		return fuse.EIO
	}
}
