package gotables

import "errors"

var (
	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("gotables: unsupported document format")

	// ErrOpenFailed is returned when the source document cannot be opened
	// or parsed at all. Nothing is written in that case.
	ErrOpenFailed = errors.New("gotables: opening document failed")

	// ErrPageTooSparse is returned for pages whose cleaned text is shorter
	// than the configured minimum.
	ErrPageTooSparse = errors.New("gotables: page text below minimum length")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("gotables: invalid configuration")

	// ErrWriteFailed is returned when the sink fails to persist the tables.
	ErrWriteFailed = errors.New("gotables: writing tables failed")
)
