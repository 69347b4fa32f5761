/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv.go
Description: CSV ingestor. Sniffs the delimiter from the leading bytes, then parses the
whole document from the start into a "Root" element with one "Item" per data row and
one child per column named after its header.
*/

package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/tree"
)

const (
	// CSVRootTag is the element wrapping all rows
	CSVRootTag = "Root"
	// CSVRowTag is the element used for each data row
	CSVRowTag = "Item"
)

// CSVIngestor converts delimited text into document trees
type CSVIngestor struct {
	SampleSize int // Bytes inspected by the delimiter sniffer
}

// NewCSVIngestor creates a CSV ingestor with the default sniffing sample
func NewCSVIngestor() *CSVIngestor {
	return &CSVIngestor{SampleSize: SampleSize}
}

// Format returns the format handled by this ingestor
func (c *CSVIngestor) Format() interfaces.Format {
	return interfaces.FormatCSV
}

// Parse builds a tree from tabular text with a header row
func (c *CSVIngestor) Parse(data []byte) (*tree.Node, error) {
	data, _, err := prepare(data)
	if err != nil {
		return nil, err
	}

	delim, err := SniffDelimiterSample(data, c.SampleSize)
	if err != nil {
		return nil, err
	}
	return ParseDelimited(data, delim)
}

// ParseDelimited parses data with a known delimiter
func ParseDelimited(data []byte, delim rune) (*tree.Node, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", interfaces.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrMalformedInput, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = tree.SanitizeTag(name)
	}

	root := tree.New(CSVRootTag)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", interfaces.ErrMalformedInput, err)
		}
		if len(record) > len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				interfaces.ErrMalformedInput, line, len(record), len(columns))
		}

		item := tree.New(CSVRowTag)
		for i, column := range columns {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			// repeated column names overwrite the earlier cell
			if existing := item.ChildByTag(column); existing != nil {
				existing.Text = value
				continue
			}
			item.Append(tree.NewLeaf(column, value))
		}
		root.Append(item)
	}
	return root, nil
}
