// Package errs defines the error values shared by all mdf4 packages.
//
// Every failure class has a sentinel that callers match with errors.Is. The
// typed errors in this package carry extra detail and report their sentinel
// through an Is method, so both styles work:
//
//	if errors.Is(err, errs.ErrFormat) { ... }
//
//	var verr *errs.UnsupportedVersionError
//	if errors.As(err, &verr) { log.Println(verr.Version) }
//
// Errors returned by the underlying byte source (os.File, io.ReaderAt) are
// never wrapped into these classes; they reach the caller unchanged.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a structural inconsistency in the file.
	ErrFormat = errors.New("mdf4: format error")
	// ErrUnsupportedVersion reports a format version outside the supported range.
	ErrUnsupportedVersion = errors.New("mdf4: unsupported version")
	// ErrInvalidType reports a visitor asked to accept a value kind it does not implement.
	ErrInvalidType = errors.New("mdf4: invalid type")
	// ErrNotImplemented reports a recognized but unimplemented format feature.
	ErrNotImplemented = errors.New("mdf4: not implemented")
	// ErrChannelGroupNotFound reports that no channel group was selected.
	ErrChannelGroupNotFound = errors.New("mdf4: channel group not found")

	ErrLinkCycle     = fmt.Errorf("%w: link cycle", ErrFormat)
	ErrListTooLong   = fmt.Errorf("%w: linked list exceeds maximum length", ErrFormat)
	ErrNoMoreRecords = errors.New("mdf4: no more records")
	ErrClosed        = errors.New("mdf4: closed")
	ErrNegativeSeek  = errors.New("mdf4: negative seek position")
	ErrNilBackend    = errors.New("mdf4: nil backend")
	ErrReadOnly      = errors.New("mdf4: backend is read-only")
)

// FormatError describes a structural inconsistency.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "mdf4: format error: " + e.Msg
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Formatf returns a *FormatError with a formatted message.
func Formatf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedVersionError carries the version string found in the file.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("mdf4: unsupported version %q", e.Version)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// InvalidTypeError is returned when a visitor receives a value kind other
// than the one it expects.
type InvalidTypeError struct {
	Unexpected string
	Expected   string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Unexpected, e.Expected)
}

func (e *InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// NotImplementedError names a feature the library recognizes but cannot decode.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return "mdf4: not implemented: " + e.Feature
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// NotImplementedf returns a *NotImplementedError with a formatted feature description.
func NotImplementedf(format string, args ...any) error {
	return &NotImplementedError{Feature: fmt.Sprintf(format, args...)}
}
