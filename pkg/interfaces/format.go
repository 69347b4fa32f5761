/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Input format tags for xmlforge. Provides lookup by name, by file name
extension and text marshaling for configuration and reports.
*/

package interfaces

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported input format
type Format int

const (
	// FormatUnknown indicates an unrecognized format
	FormatUnknown Format = iota
	// FormatJSON indicates a JSON document
	FormatJSON
	// FormatCSV indicates delimited tabular text
	FormatCSV
	// FormatXML indicates an XML document
	FormatXML
)

// Formats returns every supported format
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatXML}
}

// ParseFormat resolves a format tag such as "json", "csv" or "xml"
func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"json": FormatJSON,
		"csv":  FormatCSV,
		"xml":  FormatXML,
	}[strings.ToLower(strings.TrimSpace(v))]
	if ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, v)
}

// FormatFromName picks a format from a file name's extension
func FormatFromName(fileName string) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".xml":
		return FormatXML
	default:
		return FormatUnknown
	}
}

// String returns the format tag
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// MIMEType returns the media type usually served for the format
func (f Format) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatXML:
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}

// MarshalText implements encoding.TextMarshaler
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}
