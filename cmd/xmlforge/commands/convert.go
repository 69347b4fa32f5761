/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Convert command implementation. Turns a JSON, CSV or XML file into XML
markup plus an inferred XSD schema, printed to stdout, wrapped in a JSON or YAML
envelope, or written next to each other in an output directory.
*/

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/logging"
	"github.com/kleascm/xmlforge/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Envelope is the two-artifact payload shared by the convert command and the HTTP adapter
type Envelope struct {
	XML string `json:"xml" yaml:"xml"`
	XSD string `json:"xsd" yaml:"xsd"`
}

// ConvertOptions holds the convert command settings
type ConvertOptions struct {
	Input     string // File path, "-" for stdin
	Format    string // json, csv, xml or auto
	OutputDir string // Write <base>.xml and <base>.xsd here
	Envelope  string // json or yaml, empty prints raw artifacts
	ReportDir string // Write a JSON report here
}

// RunConvert converts one input file
func RunConvert(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	config, err := ConversionConfig()
	if err != nil {
		return err
	}

	opts := ConvertOptions{
		Input:     args[0],
		Format:    viper.GetString("convert.format"),
		OutputDir: viper.GetString("convert.output_dir"),
		Envelope:  viper.GetString("convert.envelope"),
		ReportDir: viper.GetString("convert.report_dir"),
	}

	return Convert(opts, config, logger, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Convert runs a conversion with explicit settings and streams
func Convert(opts ConvertOptions, config *core.Config, logger *logging.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	data, err := ReadInput(opts.Input, stdin)
	if err != nil {
		return err
	}

	format, err := ResolveFormat(opts.Format, opts.Input, data)
	if err != nil {
		return err
	}

	converter, err := core.NewConverter(config, logger.GetLogger(), logging.NewConversionReporter(logger))
	if err != nil {
		return err
	}

	p := newPrinter(stderr)
	result, err := converter.Convert(data, format)
	if err != nil {
		p.Printf("%s %s: %v\n", p.fail("✗"), opts.Input, err)
		return err
	}

	switch {
	case opts.Envelope != "":
		if err := writeEnvelope(stdout, opts.Envelope, Envelope{XML: result.Markup, XSD: result.Schema}); err != nil {
			return err
		}
	case opts.OutputDir != "":
		xmlPath, xsdPath, err := writeArtifacts(opts.OutputDir, opts.Input, result)
		if err != nil {
			return err
		}
		p.Printf("  %s %s\n", p.faint("xml"), xmlPath)
		p.Printf("  %s %s\n", p.faint("xsd"), xsdPath)
	default:
		fmt.Fprintln(stdout, strings.TrimRight(result.Markup, "\n"))
		fmt.Fprintln(stdout, strings.TrimRight(result.Schema, "\n"))
	}

	if opts.ReportDir != "" {
		path, err := utils.WriteReport(opts.ReportDir, "convert", Version, result)
		if err != nil {
			return err
		}
		p.Printf("  %s %s\n", p.faint("report"), path)
	}

	p.Printf("%s %s %s %d nodes in %s\n",
		p.ok("✓"), opts.Input, p.title(result.Format.String()), result.Nodes, result.Duration.Round(time.Microsecond))
	return nil
}

// writeEnvelope encodes both artifacts as JSON or YAML
func writeEnvelope(w io.Writer, kind string, env Envelope) error {
	switch strings.ToLower(kind) {
	case "json":
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported envelope %q (json, yaml)", kind)
	}
}

// writeArtifacts writes <base>.xml and <base>.xsd into dir
func writeArtifacts(dir, input string, result *core.Result) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if input == "-" || base == "" {
		base = "stdin"
	}

	xmlPath := filepath.Join(dir, base+".xml")
	xsdPath := filepath.Join(dir, base+".xsd")
	if err := os.WriteFile(xmlPath, []byte(result.Markup), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", xmlPath, err)
	}
	if err := os.WriteFile(xsdPath, []byte(result.Schema), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", xsdPath, err)
	}
	return xmlPath, xsdPath, nil
}
