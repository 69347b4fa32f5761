/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_writer.go
Description: Writes conversion reports and statistics snapshots as JSON files.
Files are named by timestamp, report type and version so runs can be compared later.
*/

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gojson "github.com/goccy/go-json"
)

// WriteReport writes result as indented JSON to dir/<type>/<timestamp>_<type>_v<version>.json
// and returns the file path
func WriteReport(dir, reportType, version string, result interface{}) (string, error) {
	reportDir := filepath.Join(dir, reportType)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// 2024-06-11_01-30-00.123_convert_v1.0.0.json
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s_v%s.json", timestamp, reportType, version)
	filePath := filepath.Join(reportDir, filename)

	data, err := gojson.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filePath, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}
