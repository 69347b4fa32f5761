/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for xmlforge. CustomFormatter writes compact,
optionally colored lines; ConversionFormatter adds a stage prefix derived from the
message so pipeline events are easy to scan.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides readable, structured logging output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, ""), nil
}

func (f *CustomFormatter) format(entry *logrus.Entry, prefix string) []byte {
	var output strings.Builder

	if f.Timestamp {
		output.WriteString(f.paint(36, entry.Time.Format("2006-01-02 15:04:05.000")))
		output.WriteByte(' ')
	}

	output.WriteString(f.paint(levelColor(entry.Level), strings.ToUpper(entry.Level.String())))
	output.WriteByte(' ')

	if prefix != "" {
		output.WriteString(f.paint(35, "["+prefix+"]"))
		output.WriteByte(' ')
	}

	if f.Caller && entry.HasCaller() {
		output.WriteString(f.paint(33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)))
		output.WriteByte(' ')
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteByte(' ')
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteByte('\n')
	return []byte(output.String())
}

func (f *CustomFormatter) paint(color int, s string) string {
	if !f.Colors {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

// levelColor returns the ANSI color code for a log level
func levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// formatFields formats structured fields sorted by key
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := formatValue(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func formatValue(key string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case error:
		return v.Error()
	case string:
		if key == "request_id" && len(v) > 8 {
			return v[:8]
		}
		if len(v) > 80 {
			return v[:80] + "..."
		}
		return v
	case []byte:
		return fmt.Sprintf("[%d bytes]", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ConversionFormatter prefixes each line with the pipeline stage it belongs to
type ConversionFormatter struct {
	CustomFormatter
}

// Format formats pipeline log entries with a stage prefix
func (f *ConversionFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, StagePrefix(entry.Message)), nil
}

// StagePrefix returns the stage label for a log message
func StagePrefix(message string) string {
	switch {
	case strings.HasPrefix(message, "Ingest"):
		return "INGEST"
	case strings.HasPrefix(message, "Normaliz"):
		return "NORMALIZE"
	case strings.Contains(message, "schema"), strings.Contains(message, "Schema"):
		return "SCHEMA"
	case strings.HasPrefix(message, "Conversion"):
		return "CONVERT"
	case strings.HasPrefix(message, "HTTP"), strings.HasPrefix(message, "Server"):
		return "HTTP"
	case strings.HasPrefix(message, "Statistics"):
		return "STATS"
	default:
		return ""
	}
}
