/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error kinds raised by a conversion. Every failure returned by the core
wraps exactly one of these so callers can map it with errors.Is.
*/

package interfaces

import (
	"errors"
)

var (
	// ErrMalformedInput means the bytes do not parse as the declared format
	ErrMalformedInput = errors.New("malformed input")
	// ErrDelimiterDetection means no consistent field separator was found
	ErrDelimiterDetection = errors.New("could not determine delimiter")
	// ErrUnsupportedFormat means the format tag is not json, csv or xml
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrSchemaInference means the tree violated an invariant during inference
	ErrSchemaInference = errors.New("schema inference failed")
)

// KindOf returns a short name for the error kind wrapped by err, or "internal"
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrDelimiterDetection):
		return "delimiter_detection"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrSchemaInference):
		return "schema_inference"
	default:
		return "internal"
	}
}

// IsInputError reports whether err was caused by the caller's input rather than a defect
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrDelimiterDetection) ||
		errors.Is(err, ErrUnsupportedFormat)
}
