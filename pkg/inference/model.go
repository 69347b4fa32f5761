/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model.go
Description: Schema model produced by inference. One Model describes every occurrence
of a tag under the same parent: attribute types, child structure and leaf type.
Attribute and child order follow first appearance in the document.
*/

package inference

// AttributeInfo is an attribute name with its inferred type
type AttributeInfo struct {
	Name string        `json:"name" yaml:"name"`
	Type PrimitiveType `json:"type" yaml:"type"`
}

// Model is the inferred shape of a tag
type Model struct {
	Tag        string          `json:"tag" yaml:"tag"`
	Attributes []AttributeInfo `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []*Model        `json:"children,omitempty" yaml:"children,omitempty"`
	LeafType   PrimitiveType   `json:"leaf_type" yaml:"leaf_type"`
	HasLeaf    bool            `json:"has_leaf" yaml:"has_leaf"` // LeafType is meaningful
	Mixed      bool            `json:"mixed" yaml:"mixed"`       // Seen both as text leaf and with children
	Count      int             `json:"count" yaml:"count"`       // Occurrences merged into this model

	attrIndex  map[string]int
	childIndex map[string]int
}

// NewModel creates an empty model for tag
func NewModel(tag string) *Model {
	return &Model{
		Tag:        tag,
		attrIndex:  make(map[string]int),
		childIndex: make(map[string]int),
	}
}

// Attribute returns the type recorded for an attribute
func (m *Model) Attribute(name string) (PrimitiveType, bool) {
	if i, ok := m.attrIndex[name]; ok {
		return m.Attributes[i].Type, true
	}
	return String, false
}

// Child returns the child model for tag, or nil
func (m *Model) Child(tag string) *Model {
	if i, ok := m.childIndex[tag]; ok {
		return m.Children[i]
	}
	return nil
}

// IsLeaf reports whether the model renders as a simple typed element
func (m *Model) IsLeaf() bool {
	return m.HasLeaf && len(m.Children) == 0
}

// setAttribute records a type, later writes win but keep the first position
func (m *Model) setAttribute(name string, typ PrimitiveType) {
	if i, ok := m.attrIndex[name]; ok {
		m.Attributes[i].Type = typ
		return
	}
	m.attrIndex[name] = len(m.Attributes)
	m.Attributes = append(m.Attributes, AttributeInfo{Name: name, Type: typ})
}

// addChild appends a child model under its tag
func (m *Model) addChild(child *Model) {
	m.childIndex[child.Tag] = len(m.Children)
	m.Children = append(m.Children, child)
}
