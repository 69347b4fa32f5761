/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for xmlforge. Converts JSON, CSV and XML
documents into XML markup with an inferred XSD schema, inspects input formats, diffs
conversions and serves the pipeline over HTTP.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/xmlforge/cmd/xmlforge/commands"
	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmlforge",
		Short: "xmlforge - convert JSON, CSV and XML into XML with an inferred XSD",
		Long: `xmlforge turns structured text documents into one canonical XML form and
infers an XML Schema describing it. JSON objects, delimited text with a header row and
attribute-heavy XML are all normalized into nested elements.`,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().String("log-dir", "", "Log output directory (empty logs to stderr only)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Bool("log-compress", false, "Compress old log files")

	// Conversion flags
	rootCmd.PersistentFlags().Bool("compact", true, "Emit markup and schema on a single line")
	rootCmd.PersistentFlags().String("indent", "  ", "Indentation used when not compact")
	rootCmd.PersistentFlags().Bool("declaration", true, "Write the XML declaration")
	rootCmd.PersistentFlags().Bool("normalize-attributes", true, "Rewrite attribute-based XML into nested elements")
	rootCmd.PersistentFlags().Int("sample-size", ingest.SampleSize, "Bytes inspected when sniffing a CSV delimiter")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"config":               "config",
		"log_level":            "log-level",
		"json_logs":            "json-logs",
		"log_dir":              "log-dir",
		"log_format":           "log-format",
		"log_max_files":        "log-max-files",
		"log_compress":         "log-compress",
		"compact":              "compact",
		"indent":               "indent",
		"declaration":          "declaration",
		"normalize_attributes": "normalize-attributes",
		"sample_size":          "sample-size",
	} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	// Add convert command
	convertCmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document into XML and XSD",
		Long: `Convert a JSON, CSV or XML document. The format comes from --format, the file
extension or the content, in that order. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunConvert,
	}
	convertCmd.Flags().String("format", "auto", "Input format (json, csv, xml, auto)")
	convertCmd.Flags().String("output-dir", "", "Write <name>.xml and <name>.xsd into this directory")
	convertCmd.Flags().String("envelope", "", "Print both artifacts as a json or yaml document")
	convertCmd.Flags().String("report-dir", "", "Write a JSON conversion report into this directory")
	viper.BindPFlag("convert.format", convertCmd.Flags().Lookup("format"))
	viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("convert.envelope", convertCmd.Flags().Lookup("envelope"))
	viper.BindPFlag("convert.report_dir", convertCmd.Flags().Lookup("report-dir"))
	rootCmd.AddCommand(convertCmd)

	// Add detect command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "detect <file>...",
		Short: "Report the format of each file",
		Long: `Report the format implied by each file's name and by its content, and the
delimiter a CSV file would be parsed with.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunDetect,
	})

	// Add compare command
	compareCmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Diff the conversions of two documents",
		Args:  cobra.ExactArgs(2),
		RunE:  commands.RunCompare,
	}
	compareCmd.Flags().String("format", "auto", "Input format for both files (json, csv, xml, auto)")
	compareCmd.Flags().Bool("fail-on-diff", false, "Exit with an error when the conversions differ")
	viper.BindPFlag("compare.format", compareCmd.Flags().Lookup("format"))
	viper.BindPFlag("compare.fail_on_diff", compareCmd.Flags().Lookup("fail-on-diff"))
	rootCmd.AddCommand(compareCmd)

	// Add serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion pipeline over HTTP",
		Long: `Start an HTTP server with POST /upload/ and POST /transform/ (multipart field
"file"), GET /stats and GET /healthz.`,
		Args: cobra.NoArgs,
		RunE: commands.RunServe,
	}
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Int64("max-upload-size", commands.DefaultMaxUploadSize, "Maximum request body size in bytes")
	serveCmd.Flags().Duration("stats-interval", time.Minute, "Interval between statistics log lines (0 disables)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.max_upload_size", serveCmd.Flags().Lookup("max-upload-size"))
	viper.BindPFlag("server.stats_interval", serveCmd.Flags().Lookup("stats-interval"))
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}
