/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: xml.go
Description: XML ingestor. Decodes well-formed XML token by token into the document
tree, keeping attributes, leaf text and child order. Non-UTF-8 documents are decoded
through their declared charset.
*/

package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/tree"
	"golang.org/x/net/html/charset"
)

// XMLIngestor converts XML documents into document trees
type XMLIngestor struct{}

// NewXMLIngestor creates a new XML ingestor
func NewXMLIngestor() *XMLIngestor {
	return &XMLIngestor{}
}

// Format returns the format handled by this ingestor
func (x *XMLIngestor) Format() interfaces.Format {
	return interfaces.FormatXML
}

// Parse builds a tree from a single-rooted XML document
func (x *XMLIngestor) Parse(data []byte) (*tree.Node, error) {
	data, transcoded, err := prepare(data)
	if err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			// already UTF-8 whatever the declaration says
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}

	var (
		root  *tree.Node
		stack []*tree.Node
		text  []*strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", interfaces.ErrMalformedInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("%w: multiple root elements", interfaces.ErrMalformedInput)
			}
			node := newElement(t)
			if len(stack) == 0 {
				root = node
			} else {
				stack[len(stack)-1].Append(node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})

		case xml.EndElement:
			top := len(stack) - 1
			node := stack[top]
			if node.IsLeaf() {
				node.Text = text[top].String()
			}
			stack = stack[:top]
			text = text[:top]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("%w: text outside the root element", interfaces.ErrMalformedInput)
				}
				continue
			}
			text[len(text)-1].Write(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", interfaces.ErrMalformedInput)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element %q", interfaces.ErrMalformedInput, stack[len(stack)-1].Tag)
	}
	return root, nil
}

// newElement maps a start tag to a node. Namespace declarations are dropped and
// names lose their namespace. When two attributes share a local name the first wins.
func newElement(start xml.StartElement) *tree.Node {
	node := tree.New(start.Name.Local)
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		if _, exists := node.Attrs.Get(attr.Name.Local); exists {
			continue
		}
		node.Attrs.Set(attr.Name.Local, attr.Value)
	}
	return node
}
