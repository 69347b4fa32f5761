/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: serializer.go
Description: Renders a document tree as XML markup. Output is deterministic: the same
tree and options always produce the same string, with child and attribute order kept.
*/

package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/xmlforge/pkg/tree"
)

// Serializer renders document trees as markup
type Serializer struct {
	opts Options
}

// NewSerializer creates a serializer with the given options
func NewSerializer(opts Options) *Serializer {
	return &Serializer{opts: opts}
}

// Options returns the layout options in use
func (s *Serializer) Options() Options {
	return s.opts
}

// Serialize renders the tree rooted at root
func (s *Serializer) Serialize(root *tree.Node) (string, error) {
	if err := root.Validate(); err != nil {
		return "", fmt.Errorf("cannot serialize tree: %w", err)
	}

	w := NewWriter(s.opts)
	w.Header()
	writeNode(w, root, 0)
	return w.String(), nil
}

// WriteTo renders the tree into out
func (s *Serializer) WriteTo(out io.Writer, root *tree.Node) error {
	text, err := s.Serialize(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// writeNode emits a node and its subtree
func writeNode(w *Writer, n *tree.Node, depth int) {
	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(n.Tag)
	for _, attr := range n.Attrs.List() {
		open.WriteByte(' ')
		open.WriteString(attr.Name)
		open.WriteString(`="`)
		open.WriteString(Escape(attr.Value))
		open.WriteByte('"')
	}

	closeTag := "</" + n.Tag + ">"
	switch {
	case n.IsLeaf() && n.Text == "":
		w.Line(depth, open.String()+"/>")
	case n.IsLeaf():
		w.Line(depth, open.String()+">"+Escape(n.Text)+closeTag)
	default:
		w.Line(depth, open.String()+">")
		for _, child := range n.Children {
			writeNode(w, child, depth+1)
		}
		w.Line(depth, closeTag)
	}
}
