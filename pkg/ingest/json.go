/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: json.go
Description: JSON ingestor. Streams tokens with go-json so object keys keep their
document order, building one child per key under a fixed "root" element. Arrays
become "item" children holding each element's text form; nested containers inside
arrays are kept as compact JSON text rather than expanded.
*/

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/tree"
)

const (
	// JSONRootTag is the element wrapping a JSON document
	JSONRootTag = "root"
	// JSONItemTag is the element used for each array element
	JSONItemTag = "item"
)

// JSONIngestor converts JSON objects into document trees
type JSONIngestor struct{}

// NewJSONIngestor creates a new JSON ingestor
func NewJSONIngestor() *JSONIngestor {
	return &JSONIngestor{}
}

// Format returns the format handled by this ingestor
func (j *JSONIngestor) Format() interfaces.Format {
	return interfaces.FormatJSON
}

// Parse builds a tree from a JSON document whose top level is an object
func (j *JSONIngestor) Parse(data []byte) (*tree.Node, error) {
	data, _, err := prepare(data)
	if err != nil {
		return nil, err
	}

	// the token stream does not check separators
	if !gojson.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON", interfaces.ErrMalformedInput)
	}

	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, malformedJSON(err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top-level JSON value must be an object", interfaces.ErrMalformedInput)
	}

	root := tree.New(JSONRootTag)
	if err := readObject(dec, root); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level object", interfaces.ErrMalformedInput)
	}
	return root, nil
}

// readObject consumes key/value pairs up to the closing brace
func readObject(dec *gojson.Decoder, parent *tree.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return malformedJSON(err)
		}
		if d, ok := tok.(gojson.Delim); ok && d == '}' {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected object key, got %v", interfaces.ErrMalformedInput, tok)
		}

		node := tree.New(tree.SanitizeTag(key))
		parent.Append(node)
		if err := readValue(dec, node); err != nil {
			return err
		}
	}
}

// readValue fills node from the next JSON value
func readValue(dec *gojson.Decoder, node *tree.Node) error {
	tok, err := dec.Token()
	if err != nil {
		return malformedJSON(err)
	}

	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			return readObject(dec, node)
		case '[':
			return readItems(dec, node)
		default:
			return fmt.Errorf("%w: unexpected %q", interfaces.ErrMalformedInput, rune(v))
		}
	default:
		node.Text = scalarText(v)
		return nil
	}
}

// readItems adds one item child per array element
func readItems(dec *gojson.Decoder, node *tree.Node) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return malformedJSON(err)
		}

		var text string
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case ']':
				return nil
			case '{', '[':
				var b strings.Builder
				if err := writeCompact(dec, &b, v); err != nil {
					return err
				}
				text = b.String()
			default:
				return fmt.Errorf("%w: unexpected %q", interfaces.ErrMalformedInput, rune(v))
			}
		default:
			text = scalarText(v)
		}
		node.Append(tree.NewLeaf(JSONItemTag, text))
	}
}

// writeCompact re-encodes the container opened by open as compact JSON
func writeCompact(dec *gojson.Decoder, b *strings.Builder, open gojson.Delim) error {
	b.WriteRune(rune(open))
	closing := gojson.Delim('}')
	if open == '[' {
		closing = ']'
	}

	first := true
	expectKey := open == '{'
	for {
		tok, err := dec.Token()
		if err != nil {
			return malformedJSON(err)
		}
		if d, ok := tok.(gojson.Delim); ok && d == closing {
			b.WriteRune(rune(closing))
			return nil
		}

		if open == '{' {
			if expectKey {
				if !first {
					b.WriteByte(',')
				}
				key, ok := tok.(string)
				if !ok {
					return fmt.Errorf("%w: expected object key, got %v", interfaces.ErrMalformedInput, tok)
				}
				b.WriteString(quote(key))
				b.WriteByte(':')
				expectKey = false
				first = false
				continue
			}
			expectKey = true
		} else if !first {
			b.WriteByte(',')
		}
		first = false

		if d, ok := tok.(gojson.Delim); ok {
			if d != '{' && d != '[' {
				return fmt.Errorf("%w: unexpected %q", interfaces.ErrMalformedInput, rune(d))
			}
			if err := writeCompact(dec, b, d); err != nil {
				return err
			}
			continue
		}
		b.WriteString(literal(tok))
	}
}

// scalarText is the element text for a JSON scalar
func scalarText(tok any) string {
	switch v := tok.(type) {
	case string:
		return v
	case gojson.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// literal is the JSON source form of a scalar token
func literal(tok any) string {
	switch v := tok.(type) {
	case string:
		return quote(v)
	case nil:
		return "null"
	default:
		return scalarText(v)
	}
}

func quote(s string) string {
	b, err := gojson.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}

func malformedJSON(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected end of JSON input", interfaces.ErrMalformedInput)
	}
	return fmt.Errorf("%w: %v", interfaces.ErrMalformedInput, err)
}
