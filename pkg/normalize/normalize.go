/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: normalize.go
Description: Structural normalizer for XML-sourced trees. Decides from the root node
whether a document stores its data in attributes and, if so, rewrites every attribute
into a leading child element. The rewrite is one-way and drops the attribute/element
distinction; it exists to produce attribute-free markup for schema inference.
*/

package normalize

import (
	"github.com/kleascm/xmlforge/pkg/tree"
)

// Structure is the heuristic classification of an XML document
type Structure int

const (
	// Unknown means the root has neither attributes nor children
	Unknown Structure = iota
	// Nested means the root has children but no attributes
	Nested
	// AttributeBased means the root carries at least one attribute
	AttributeBased
)

// String returns the classification name
func (s Structure) String() string {
	switch s {
	case AttributeBased:
		return "attributes"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Structure) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify inspects only the root node
func Classify(root *tree.Node) Structure {
	switch {
	case root == nil:
		return Unknown
	case root.Attrs.Len() > 0:
		return AttributeBased
	case len(root.Children) > 0:
		return Nested
	default:
		return Unknown
	}
}

// Flatten returns a copy of the tree where every attribute became a child leaf placed
// before the node's original children. The input is not modified.
func Flatten(node *tree.Node) *tree.Node {
	if node == nil {
		return nil
	}
	if node.IsLeaf() && node.Attrs.Len() == 0 {
		return node.Clone()
	}

	out := tree.New(node.Tag)
	attrs := node.Attrs.List()
	if n := len(attrs) + len(node.Children); n > 0 {
		out.Children = make([]*tree.Node, 0, n)
	}
	for _, attr := range attrs {
		out.Append(tree.NewLeaf(attr.Name, attr.Value))
	}
	for _, child := range node.Children {
		out.Append(Flatten(child))
	}
	if out.IsLeaf() {
		out.Text = node.Text
	}
	return out
}

// Normalize classifies root and flattens the tree when it is attribute-based.
// Other trees are returned unchanged.
func Normalize(root *tree.Node) (*tree.Node, Structure) {
	structure := Classify(root)
	if structure != AttributeBased {
		return root, structure
	}
	return Flatten(root), structure
}
