/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format_test.go
Description: Tests for format names, extension lookup and error kinds.
*/

package interfaces_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromName(t *testing.T) {
	assert.Equal(t, interfaces.FormatJSON, interfaces.FormatFromName("data.json"))
	assert.Equal(t, interfaces.FormatCSV, interfaces.FormatFromName("/tmp/People.CSV"))
	assert.Equal(t, interfaces.FormatXML, interfaces.FormatFromName("feed.xml"))
	assert.Equal(t, interfaces.FormatUnknown, interfaces.FormatFromName("notes.txt"))
	assert.Equal(t, interfaces.FormatUnknown, interfaces.FormatFromName("noext"))
}

func TestParseFormat(t *testing.T) {
	for _, f := range interfaces.Formats() {
		got, err := interfaces.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := interfaces.ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, interfaces.FormatJSON, got)

	_, err = interfaces.ParseFormat("yaml")
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedFormat)
}

func TestFormatText(t *testing.T) {
	var f interfaces.Format
	require.NoError(t, f.UnmarshalText([]byte("xml")))
	assert.Equal(t, interfaces.FormatXML, f)

	b, err := interfaces.FormatCSV.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "csv", string(b))
	assert.Equal(t, "unknown", interfaces.FormatUnknown.String())
	assert.Equal(t, "text/csv", interfaces.FormatCSV.MIMEType())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("%w: line 3", interfaces.ErrMalformedInput)
	assert.Equal(t, "malformed_input", interfaces.KindOf(wrapped))
	assert.Equal(t, "delimiter_detection", interfaces.KindOf(interfaces.ErrDelimiterDetection))
	assert.Equal(t, "unsupported_format", interfaces.KindOf(interfaces.ErrUnsupportedFormat))
	assert.Equal(t, "schema_inference", interfaces.KindOf(interfaces.ErrSchemaInference))
	assert.Equal(t, "internal", interfaces.KindOf(errors.New("boom")))
	assert.Equal(t, "", interfaces.KindOf(nil))

	assert.True(t, interfaces.IsInputError(wrapped))
	assert.False(t, interfaces.IsInputError(interfaces.ErrSchemaInference))
}
