/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compare_test.go
Description: Tests for the compare command and line diffs.
*/

package commands

import (
	"bytes"
	"testing"

	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLines(t *testing.T) {
	lines := DiffLines("a\nb\nc\n", "a\nx\nc\n")
	assert.Equal(t, []DiffLine{
		{Op: DiffEqual, Text: "a"},
		{Op: DiffDelete, Text: "b"},
		{Op: DiffInsert, Text: "x"},
		{Op: DiffEqual, Text: "c"},
	}, lines)

	assert.False(t, hasChanges(DiffLines("same\n", "same\n")))
}

func TestCompareSameShape(t *testing.T) {
	a := writeInput(t, "a.json", `{"name": "Ann", "age": 30}`)
	b := writeInput(t, "b.json", `{"name": "Bob", "age": 41}`)

	var out bytes.Buffer
	identical, err := Compare(a, b, "", core.DefaultConfig(), quietLogger(t), nil, &out)
	require.NoError(t, err)
	assert.False(t, identical)
	assert.Contains(t, out.String(), "xsd identical")
	assert.Contains(t, out.String(), "-  <name>Ann</name>")
	assert.Contains(t, out.String(), "+  <name>Bob</name>")
}

func TestCompareSchemaChange(t *testing.T) {
	a := writeInput(t, "a.json", `{"age": 30}`)
	b := writeInput(t, "b.json", `{"age": "thirty"}`)

	var out bytes.Buffer
	identical, err := Compare(a, b, "", core.DefaultConfig(), quietLogger(t), nil, &out)
	require.NoError(t, err)
	assert.False(t, identical)
	assert.Contains(t, out.String(), `type="xs:integer"`)
	assert.Contains(t, out.String(), `type="xs:string"`)
	assert.NotContains(t, out.String(), "xsd identical")
}

func TestCompareIdentical(t *testing.T) {
	a := writeInput(t, "a.json", `{"k": 1}`)

	var out bytes.Buffer
	identical, err := Compare(a, a, "", core.DefaultConfig(), quietLogger(t), nil, &out)
	require.NoError(t, err)
	assert.True(t, identical)
	assert.Contains(t, out.String(), "xml identical")
}

func TestCompareMissingFile(t *testing.T) {
	_, err := Compare("does-not-exist.json", "also-missing.json", "", core.DefaultConfig(), quietLogger(t), nil, &bytes.Buffer{})
	assert.Error(t, err)
}
