/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: render.go
Description: Renders an inferred schema model as an XML Schema document. Layout follows
the same indent/compact options as the tree serializer.
*/

package inference

import (
	"fmt"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/markup"
)

// XSDNamespace is the XML Schema namespace
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// Renderer writes schema models as XSD text
type Renderer struct {
	opts markup.Options
}

// NewRenderer creates a renderer with the given layout options
func NewRenderer(opts markup.Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render returns the schema document for model
func (r *Renderer) Render(model *Model) (string, error) {
	if model == nil {
		return "", fmt.Errorf("%w: nil model", interfaces.ErrSchemaInference)
	}

	w := markup.NewWriter(r.opts)
	w.Header()
	w.Line(0, fmt.Sprintf(`<xs:schema xmlns:xs="%s">`, XSDNamespace))
	if err := renderElement(w, model, 1); err != nil {
		return "", err
	}
	w.Line(0, `</xs:schema>`)
	return w.String(), nil
}

func renderElement(w *markup.Writer, m *Model, depth int) error {
	if m.Tag == "" {
		return fmt.Errorf("%w: model with empty tag", interfaces.ErrSchemaInference)
	}
	name := markup.Escape(m.Tag)

	switch {
	case m.IsLeaf() && len(m.Attributes) == 0:
		w.Line(depth, fmt.Sprintf(`<xs:element name="%s" type="%s"/>`, name, m.LeafType.XSD()))
		return nil
	case m.IsLeaf():
		// typed text that also carries attributes
		w.Line(depth, fmt.Sprintf(`<xs:element name="%s">`, name))
		w.Line(depth+1, `<xs:complexType>`)
		w.Line(depth+2, `<xs:simpleContent>`)
		w.Line(depth+3, fmt.Sprintf(`<xs:extension base="%s">`, m.LeafType.XSD()))
		renderAttributes(w, m, depth+4)
		w.Line(depth+3, `</xs:extension>`)
		w.Line(depth+2, `</xs:simpleContent>`)
		w.Line(depth+1, `</xs:complexType>`)
		w.Line(depth, `</xs:element>`)
		return nil
	case len(m.Children) == 0 && len(m.Attributes) == 0:
		w.Line(depth, fmt.Sprintf(`<xs:element name="%s"/>`, name))
		return nil
	}

	w.Line(depth, fmt.Sprintf(`<xs:element name="%s">`, name))
	if m.Mixed {
		w.Line(depth+1, `<xs:complexType mixed="true">`)
	} else {
		w.Line(depth+1, `<xs:complexType>`)
	}
	if len(m.Children) > 0 {
		w.Line(depth+2, `<xs:sequence>`)
		for _, child := range m.Children {
			if err := renderElement(w, child, depth+3); err != nil {
				return err
			}
		}
		w.Line(depth+2, `</xs:sequence>`)
	}
	renderAttributes(w, m, depth+2)
	w.Line(depth+1, `</xs:complexType>`)
	w.Line(depth, `</xs:element>`)
	return nil
}

func renderAttributes(w *markup.Writer, m *Model, depth int) {
	for _, attr := range m.Attributes {
		w.Line(depth, fmt.Sprintf(`<xs:attribute name="%s" type="%s" use="required"/>`,
			markup.Escape(attr.Name), attr.Type.XSD()))
	}
}
