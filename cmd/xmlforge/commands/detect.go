/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detect.go
Description: Detect command implementation. Reports the format of each file by name
and by content, and the sniffed delimiter for delimited text.
*/

package commands

import (
	"fmt"
	"io"

	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Detection is the result of inspecting one file
type Detection struct {
	Path      string            `json:"path"`
	ByName    interfaces.Format `json:"by_name"`
	ByContent interfaces.Format `json:"by_content"`
	Delimiter rune              `json:"delimiter,omitempty"`
	Err       error             `json:"-"`
}

// RunDetect inspects every file argument
func RunDetect(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sampleSize := viper.GetInt("sample_size")
	p := newPrinter(cmd.OutOrStdout())
	failed := 0
	for _, path := range args {
		d := Detect(path, cmd.InOrStdin(), sampleSize)
		printDetection(p, d)
		if d.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(args))
	}
	return nil
}

// Detect inspects a single file
func Detect(path string, stdin io.Reader, sampleSize int) Detection {
	d := Detection{Path: path, ByName: interfaces.FormatFromName(path)}

	data, err := ReadInput(path, stdin)
	if err != nil {
		d.Err = err
		return d
	}

	d.ByContent = ingest.FormatFromContent(data)
	if d.ByName == interfaces.FormatCSV || d.ByContent == interfaces.FormatCSV {
		if delim, err := ingest.SniffDelimiterSample(data, sampleSize); err == nil {
			d.Delimiter = delim
		}
	}
	return d
}

func printDetection(p *printer, d Detection) {
	if d.Err != nil {
		p.Printf("%s %s: %v\n", p.fail("✗"), d.Path, d.Err)
		return
	}

	mark := p.ok("✓")
	if d.ByName != interfaces.FormatUnknown && d.ByContent != interfaces.FormatUnknown && d.ByName != d.ByContent {
		mark = p.warn("!")
	}
	p.Printf("%s %s\n", mark, p.title(d.Path))
	p.Printf("   name:    %s\n", d.ByName)
	p.Printf("   content: %s\n", d.ByContent)
	if d.Delimiter != 0 {
		p.Printf("   delimiter: %q\n", d.Delimiter)
	}
}
