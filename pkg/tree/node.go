/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: node.go
Description: Canonical document tree for xmlforge. Every ingested format (JSON, CSV, XML)
is turned into this tree before it is serialized as markup or fed to schema inference.
Attribute and child order is significant and preserved throughout.
*/

package tree

import (
	"fmt"
)

// Attr is a single name/value pair on a node
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attributes is an insertion-ordered attribute mapping with unique names
type Attributes struct {
	list  []Attr
	index map[string]int
}

// Set stores value under name. An existing name keeps its position.
func (a *Attributes) Set(name, value string) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[name]; ok {
		a.list[i].Value = value
		return
	}
	a.index[name] = len(a.list)
	a.list = append(a.list, Attr{Name: name, Value: value})
}

// Get returns the value stored under name
func (a *Attributes) Get(name string) (string, bool) {
	if i, ok := a.index[name]; ok {
		return a.list[i].Value, true
	}
	return "", false
}

// Len returns the number of attributes
func (a *Attributes) Len() int {
	return len(a.list)
}

// List returns the attributes in insertion order. The slice must not be modified.
func (a *Attributes) List() []Attr {
	return a.list
}

// Names returns attribute names in insertion order
func (a *Attributes) Names() []string {
	names := make([]string, 0, len(a.list))
	for _, attr := range a.list {
		names = append(names, attr.Name)
	}
	return names
}

// Node is one element of the document tree
type Node struct {
	Tag      string     // Element name, never empty
	Attrs    Attributes // Ordered attributes
	Text     string     // Inline text, only meaningful when Children is empty
	Children []*Node    // Ordered children, exclusively owned
}

// New creates an empty node with the given tag
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// NewLeaf creates a childless node carrying text
func NewLeaf(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

// Append adds children in order and returns the receiver
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildByTag returns the first child with the given tag
func (n *Node) ChildByTag(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree rooted at n
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Tag: n.Tag, Text: n.Text}
	for _, attr := range n.Attrs.List() {
		out.Attrs.Set(attr.Name, attr.Value)
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			out.Children = append(out.Children, child.Clone())
		}
	}
	return out
}

// Walk visits every node depth-first in document order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Validate checks the tree invariants: non-empty tags and no text next to children
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	var err error
	n.Walk(func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		if node.Tag == "" {
			err = fmt.Errorf("node at depth %d has an empty tag", depth)
			return false
		}
		if !IsValidTag(node.Tag) {
			err = fmt.Errorf("node %q is not a valid element name", node.Tag)
			return false
		}
		if len(node.Children) > 0 && node.Text != "" {
			err = fmt.Errorf("node %q has both text and children", node.Tag)
			return false
		}
		return true
	})
	return err
}
