/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the xmlforge commands. Provides configuration
loading, logging setup, input reading, format resolution and colored console output
used across all command implementations.
*/

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Version is reported by the CLI and written into report files
const Version = "1.0.0"

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// XMLFORGE_SERVER_ADDR maps to server.addr
	viper.SetEnvPrefix("XMLFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the logger from the logging keys
func SetupLogging() (*logging.Logger, error) {
	cfg := logging.DefaultLoggerConfig()
	if v := viper.GetString("log_level"); v != "" {
		cfg.Level = logging.LogLevel(v)
	}
	if v := viper.GetString("log_format"); v != "" {
		cfg.Format = logging.LogFormat(v)
	}
	if viper.GetBool("json_logs") {
		cfg.Format = logging.LogFormatJSON
	}
	cfg.OutputDir = viper.GetString("log_dir")
	if v := viper.GetInt("log_max_files"); v > 0 {
		cfg.MaxFiles = v
	}
	cfg.Compress = viper.GetBool("log_compress")
	cfg.Colors = isTerminal(os.Stderr)

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// ConversionConfig returns the conversion settings from viper over the defaults
func ConversionConfig() (*core.Config, error) {
	cfg := core.DefaultConfig()
	if viper.IsSet("compact") {
		cfg.Compact = viper.GetBool("compact")
	}
	if viper.IsSet("indent") {
		cfg.Indent = viper.GetString("indent")
	}
	if viper.IsSet("declaration") {
		cfg.Declaration = viper.GetBool("declaration")
	}
	if viper.IsSet("normalize_attributes") {
		cfg.NormalizeAttributes = viper.GetBool("normalize_attributes")
	}
	if viper.IsSet("sample_size") {
		cfg.SampleSize = viper.GetInt("sample_size")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid conversion config: %w", err)
	}
	return cfg, nil
}

// ReadInput reads a file, or stdin when path is "-"
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ResolveFormat picks the input format: an explicit name wins, then the file
// extension, then the content
func ResolveFormat(name, path string, data []byte) (interfaces.Format, error) {
	if name != "" && name != "auto" {
		return interfaces.ParseFormat(name)
	}
	if format := interfaces.FormatFromName(path); format != interfaces.FormatUnknown {
		return format, nil
	}
	if format := ingest.FormatFromContent(data); format != interfaces.FormatUnknown {
		return format, nil
	}
	return interfaces.FormatUnknown, fmt.Errorf("%w: cannot determine format of %s", interfaces.ErrUnsupportedFormat, filepath.Base(path))
}

// printer writes console output, colored only on terminals
type printer struct {
	out     io.Writer
	title   func(a ...interface{}) string
	ok      func(a ...interface{}) string
	warn    func(a ...interface{}) string
	fail    func(a ...interface{}) string
	faint   func(a ...interface{}) string
	colored bool
}

func newPrinter(out io.Writer) *printer {
	colored := isTerminal(out)
	paint := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &printer{
		out:     out,
		title:   paint(color.FgCyan, color.Bold),
		ok:      paint(color.FgGreen),
		warn:    paint(color.FgYellow),
		fail:    paint(color.FgRed, color.Bold),
		faint:   paint(color.Faint),
		colored: colored,
	}
}

func (p *printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
