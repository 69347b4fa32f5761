/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_writer_test.go
Description: Tests for the JSON report writer.
*/

package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/kleascm/xmlforge/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	path, err := utils.WriteReport(dir, "convert", "1.0.0", map[string]interface{}{"format": "json", "nodes": 3})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "convert"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_convert_v1.0.0.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, gojson.Unmarshal(data, &decoded))
	assert.Equal(t, "json", decoded["format"])
	assert.Equal(t, float64(3), decoded["nodes"])
}

func TestWriteReportRejectsUnmarshalable(t *testing.T) {
	_, err := utils.WriteReport(t.TempDir(), "convert", "1.0.0", map[string]interface{}{"ch": make(chan int)})
	assert.Error(t, err)
}
