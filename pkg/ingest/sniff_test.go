/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sniff_test.go
Description: Tests for delimiter sniffing.
*/

package ingest_test

import (
	"strings"
	"testing"

	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffDelimiter(t *testing.T) {
	cases := map[string]rune{
		"a;b;c\n1;2;3\n":                 ';',
		"First Name,Age\nAnn,30\n":       ',',
		"a\tb\n1\t2\n3\t4\n":             '\t',
		"a|b|c\r\n1|2|3\r\n":             '|',
		"name,note\nx,\"a;b;c\"\ny,z\n":  ',',
		"a,b\n":                          ',',
		"x.y;z\n1.5;2\n":                 ';',
		"id:name\n1:Ann\n2:Bob\n3:Carl\n": ':',
	}
	for sample, want := range cases {
		got, err := ingest.SniffDelimiter([]byte(sample))
		require.NoError(t, err, "sample %q", sample)
		assert.Equal(t, want, got, "sample %q", sample)
	}
}

func TestSniffDelimiterFailures(t *testing.T) {
	for _, sample := range []string{"", "\n\n", "abc", "abc\ndef\n"} {
		_, err := ingest.SniffDelimiter([]byte(sample))
		assert.ErrorIs(t, err, interfaces.ErrDelimiterDetection, "sample %q", sample)
	}
}

func TestSniffDelimiterToleratesInconsistentLine(t *testing.T) {
	var b strings.Builder
	b.WriteString("a;b\n")
	for i := 0; i < 19; i++ {
		b.WriteString("1;2\n")
	}
	b.WriteString("odd line\n")

	got, err := ingest.SniffDelimiter([]byte(b.String()))
	require.NoError(t, err)
	assert.Equal(t, ';', got)
}

func TestSniffDelimiterDropsTruncatedLine(t *testing.T) {
	// the last line is cut inside the sample window and would break consistency
	data := []byte("a;b;c\n1;2;3\n4;5")
	got, err := ingest.SniffDelimiterSample(data, len(data)-1)
	require.NoError(t, err)
	assert.Equal(t, ';', got)
}

func TestSniffDoesNotConsumeInput(t *testing.T) {
	data := []byte("a;b\n1;2\n")
	before := string(data)
	_, err := ingest.SniffDelimiter(data)
	require.NoError(t, err)
	assert.Equal(t, before, string(data))
}

func TestFormatFromContent(t *testing.T) {
	assert.Equal(t, interfaces.FormatJSON, ingest.FormatFromContent([]byte(`  {"a":1}`)))
	assert.Equal(t, interfaces.FormatXML, ingest.FormatFromContent([]byte("\n<r/>")))
	assert.Equal(t, interfaces.FormatCSV, ingest.FormatFromContent([]byte("a,b\n1,2\n")))
	assert.Equal(t, interfaces.FormatUnknown, ingest.FormatFromContent([]byte("hello")))
	assert.Equal(t, interfaces.FormatUnknown, ingest.FormatFromContent(nil))
	assert.Equal(t, interfaces.FormatJSON, ingest.FormatFromContent(append([]byte{0xEF, 0xBB, 0xBF}, '{', '}')))
}

func TestRegistry(t *testing.T) {
	r := ingest.NewRegistry(0)
	for _, f := range interfaces.Formats() {
		ing, err := r.Get(f)
		require.NoError(t, err)
		assert.Equal(t, f, ing.Format())
	}
	_, err := r.Get(interfaces.FormatUnknown)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedFormat)
}
