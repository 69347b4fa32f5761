/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Ingestor selection. Maps each supported format to its ingestor so callers
dispatch on the format tag instead of branching per format, and sniffs a format from
content when no name is available.
*/

package ingest

import (
	"bytes"
	"fmt"

	"github.com/kleascm/xmlforge/pkg/interfaces"
)

// Registry holds one ingestor per format
type Registry struct {
	ingestors map[interfaces.Format]interfaces.Ingestor
}

// NewRegistry creates a registry with the JSON, CSV and XML ingestors. sampleSize
// configures the CSV delimiter sniffer; zero selects SampleSize.
func NewRegistry(sampleSize int) *Registry {
	if sampleSize <= 0 {
		sampleSize = SampleSize
	}
	r := &Registry{ingestors: make(map[interfaces.Format]interfaces.Ingestor)}
	r.Register(NewJSONIngestor())
	r.Register(&CSVIngestor{SampleSize: sampleSize})
	r.Register(NewXMLIngestor())
	return r
}

// Register installs or replaces the ingestor for its format
func (r *Registry) Register(ingestor interfaces.Ingestor) {
	r.ingestors[ingestor.Format()] = ingestor
}

// Get returns the ingestor for format
func (r *Registry) Get(format interfaces.Format) (interfaces.Ingestor, error) {
	ingestor, ok := r.ingestors[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrUnsupportedFormat, format)
	}
	return ingestor, nil
}

// FormatFromContent guesses the format from the document's first bytes: an opening
// brace means JSON, an angle bracket means XML, and anything with a detectable
// delimiter is CSV.
func FormatFromContent(data []byte) interfaces.Format {
	data, _, err := prepare(data)
	if err != nil {
		return interfaces.FormatUnknown
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return interfaces.FormatUnknown
	}
	switch trimmed[0] {
	case '{':
		return interfaces.FormatJSON
	case '<':
		return interfaces.FormatXML
	}
	if _, err := SniffDelimiter(trimmed); err == nil {
		return interfaces.FormatCSV
	}
	return interfaces.FormatUnknown
}
