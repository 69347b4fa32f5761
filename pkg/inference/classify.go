/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classify.go
Description: Primitive type classification for leaf text and attribute values.
Classification is total: every string maps to exactly one PrimitiveType.
*/

package inference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PrimitiveType is the inferred type of a leaf or attribute value
type PrimitiveType int

const (
	// String is the fallback type
	String PrimitiveType = iota
	// Boolean matches true/false in any letter case
	Boolean
	// Float matches anything strconv accepts as a floating-point literal
	Float
	// Integer matches unsigned ASCII digit strings
	Integer
)

// String returns the lowercase type name
func (p PrimitiveType) String() string {
	switch p {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

// XSD returns the XML Schema built-in type name
func (p PrimitiveType) XSD() string {
	return "xs:" + p.String()
}

// MarshalText implements encoding.TextMarshaler
func (p PrimitiveType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *PrimitiveType) UnmarshalText(d []byte) error {
	switch strings.TrimPrefix(string(d), "xs:") {
	case "integer":
		*p = Integer
	case "float":
		*p = Float
	case "boolean":
		*p = Boolean
	case "string":
		*p = String
	default:
		return fmt.Errorf("unknown primitive type %q", d)
	}
	return nil
}

// Classify returns the type of value. Rules are tried in order: digits only,
// float literal, true/false, then string. A leading sign disqualifies integer.
func Classify(value string) PrimitiveType {
	if isDigits(value) {
		return Integer
	}
	if isFloat(value) {
		return Float
	}
	switch strings.ToLower(value) {
	case "true", "false":
		return Boolean
	}
	return String
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isFloat(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return true
	}
	// out-of-range literals are still well-formed floats
	return errors.Is(err, strconv.ErrRange)
}
