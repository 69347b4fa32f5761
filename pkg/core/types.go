/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the xmlforge conversion pipeline: configuration and the
result of a single conversion request.
*/

package core

import (
	"fmt"
	"time"

	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/markup"
	"github.com/kleascm/xmlforge/pkg/normalize"
)

// Config holds the conversion settings
type Config struct {
	Compact             bool   `json:"compact" mapstructure:"compact"`                           // Strip layout whitespace from both artifacts
	Indent              string `json:"indent" mapstructure:"indent"`                             // Per-level indent when not compact
	Declaration         bool   `json:"declaration" mapstructure:"declaration"`                   // Write the XML header
	NormalizeAttributes bool   `json:"normalize_attributes" mapstructure:"normalize_attributes"` // Rewrite attribute-based XML
	SampleSize          int    `json:"sample_size" mapstructure:"sample_size"`                   // Bytes inspected by the CSV sniffer
}

// DefaultConfig returns the settings used when none are given
func DefaultConfig() *Config {
	return &Config{
		Compact:             true,
		Indent:              "  ",
		Declaration:         true,
		NormalizeAttributes: true,
		SampleSize:          ingest.SampleSize,
	}
}

// Validate checks the Config for invalid values
func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive")
	}
	for _, r := range c.Indent {
		if r != ' ' && r != '\t' {
			return fmt.Errorf("indent may only contain spaces and tabs")
		}
	}
	return nil
}

// MarkupOptions returns the layout options shared by both artifacts
func (c *Config) MarkupOptions() markup.Options {
	return markup.Options{
		Indent:      c.Indent,
		Compact:     c.Compact,
		Declaration: c.Declaration,
	}
}

// Result is the outcome of one successful conversion
type Result struct {
	ID        string              `json:"id" yaml:"id"`               // Request identifier
	Format    interfaces.Format   `json:"format" yaml:"format"`       // Input format
	Structure normalize.Structure `json:"structure" yaml:"structure"` // XML classification, unknown for other formats
	Markup    string              `json:"xml" yaml:"xml"`             // Serialized document tree
	Schema    string              `json:"xsd" yaml:"xsd"`             // Rendered schema
	Nodes     int                 `json:"nodes" yaml:"nodes"`         // Nodes in the final tree
	InputSize int                 `json:"input_size" yaml:"input_size"`
	Duration  time.Duration       `json:"duration" yaml:"duration"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
}
