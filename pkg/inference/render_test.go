/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render_test.go
Description: Tests for XSD rendering.
*/

package inference_test

import (
	"strings"
	"testing"

	"github.com/kleascm/xmlforge/pkg/inference"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/markup"
	"github.com/kleascm/xmlforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, root *tree.Node, opts markup.Options) string {
	t.Helper()
	model, err := inference.NewEngine().Infer(root)
	require.NoError(t, err)
	out, err := inference.NewRenderer(opts).Render(model)
	require.NoError(t, err)
	return out
}

func TestRenderIndented(t *testing.T) {
	root := tree.New("root")
	root.Attrs.Set("id", "7")
	root.Append(tree.NewLeaf("a", "1"), tree.New("empty"))

	out := render(t, root, markup.Options{Indent: "  ", Declaration: true})

	want := strings.Join([]string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">`,
		`  <xs:element name="root">`,
		`    <xs:complexType>`,
		`      <xs:sequence>`,
		`        <xs:element name="a" type="xs:integer"/>`,
		`        <xs:element name="empty"/>`,
		`      </xs:sequence>`,
		`      <xs:attribute name="id" type="xs:integer" use="required"/>`,
		`    </xs:complexType>`,
		`  </xs:element>`,
		`</xs:schema>`,
		``,
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderCompactHasNoNewlines(t *testing.T) {
	root := tree.New("r").Append(tree.New("b").Append(tree.NewLeaf("c", "true")))
	out := render(t, root, markup.DefaultOptions())

	assert.NotContains(t, out, "\n")
	assert.True(t, strings.HasPrefix(out, markup.Declaration+"<xs:schema"))
	assert.Contains(t, out, `<xs:element name="c" type="xs:boolean"/>`)
}

func TestRenderMixedAndLeafWithAttributes(t *testing.T) {
	price := tree.NewLeaf("price", "9.99")
	price.Attrs.Set("currency", "EUR")
	root := tree.New("r").Append(
		price,
		tree.NewLeaf("v", "1"),
		tree.New("v").Append(tree.NewLeaf("w", "x")),
	)

	out := render(t, root, markup.Options{Compact: true})

	assert.Contains(t, out, `<xs:element name="price"><xs:complexType><xs:simpleContent>`+
		`<xs:extension base="xs:float"><xs:attribute name="currency" type="xs:string" use="required"/>`+
		`</xs:extension></xs:simpleContent></xs:complexType></xs:element>`)
	assert.Contains(t, out, `<xs:element name="v"><xs:complexType mixed="true"><xs:sequence>`)
}

func TestRenderNilModel(t *testing.T) {
	_, err := inference.NewRenderer(markup.DefaultOptions()).Render(nil)
	assert.ErrorIs(t, err, interfaces.ErrSchemaInference)
}
