/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv_test.go
Description: Tests for the CSV ingestor.
*/

package ingest_test

import (
	"strings"
	"testing"

	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVIngestBasic(t *testing.T) {
	got, err := ingest.NewCSVIngestor().Parse([]byte("First Name,Age\nAnn,30\n"))
	require.NoError(t, err)

	want := tree.New("Root").Append(
		tree.New("Item").Append(
			tree.NewLeaf("First_Name", "Ann"),
			tree.NewLeaf("Age", "30"),
		),
	)
	assertTree(t, want, got)
}

func TestCSVIngestSemicolonsAndQuotes(t *testing.T) {
	data := "id;label\n1;\"semi;colon\"\n2;\"multi\nline\"\n"
	got, err := ingest.NewCSVIngestor().Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, got.Children, 2)
	assert.Equal(t, "semi;colon", got.Children[0].ChildByTag("label").Text)
	assert.Equal(t, "multi\nline", got.Children[1].ChildByTag("label").Text)
}

func TestCSVIngestShortRowsArePadded(t *testing.T) {
	got, err := ingest.NewCSVIngestor().Parse([]byte("a,b,c\n1,2,3\n4,5\n"))
	require.NoError(t, err)

	row := got.Children[1]
	require.Len(t, row.Children, 3)
	assert.Equal(t, "", row.ChildByTag("c").Text)
}

func TestCSVIngestDuplicateHeadersOverwrite(t *testing.T) {
	got, err := ingest.NewCSVIngestor().Parse([]byte("my col,my_col,z\n1,2,3\n"))
	require.NoError(t, err)

	row := got.Children[0]
	require.Len(t, row.Children, 2)
	assert.Equal(t, "my_col", row.Children[0].Tag)
	assert.Equal(t, "2", row.Children[0].Text)
	assert.Equal(t, "z", row.Children[1].Tag)
}

func TestCSVIngestHeaderOnly(t *testing.T) {
	got, err := ingest.NewCSVIngestor().Parse([]byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "Root", got.Tag)
	assert.Empty(t, got.Children)
}

func TestCSVIngestErrors(t *testing.T) {
	_, err := ingest.NewCSVIngestor().Parse([]byte(""))
	assert.ErrorIs(t, err, interfaces.ErrDelimiterDetection)

	_, err = ingest.NewCSVIngestor().Parse([]byte("single\nvalues\n"))
	assert.ErrorIs(t, err, interfaces.ErrDelimiterDetection)

	long := "a,b\n" + strings.Repeat("1,2\n", 10) + "3,4,5,6\n"
	_, err = ingest.NewCSVIngestor().Parse([]byte(long))
	assert.ErrorIs(t, err, interfaces.ErrMalformedInput)
}

func TestCSVIngestBareQuotes(t *testing.T) {
	got, err := ingest.NewCSVIngestor().Parse([]byte("Name,Note\nAnn,he said \"hi\"\n"))
	require.NoError(t, err)

	require.Len(t, got.Children, 1)
	assert.Equal(t, "Ann", got.Children[0].ChildByTag("Name").Text)
	assert.Equal(t, `he said "hi"`, got.Children[0].ChildByTag("Note").Text)

	// an unterminated quote runs to the end of input
	got, err = ingest.ParseDelimited([]byte("a,b\n\"unterminated,2\n"), ',')
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Contains(t, got.Children[0].ChildByTag("a").Text, "unterminated,2")
	assert.Equal(t, "", got.Children[0].ChildByTag("b").Text)
}
