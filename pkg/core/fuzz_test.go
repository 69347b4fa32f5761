/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fuzz_test.go
Description: Fuzz targets for the conversion pipeline. Every input must either convert
into a well-formed result or fail with one of the documented error kinds; panics and
unclassified errors are findings.
*/

package core_test

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/interfaces"
)

func fuzzFormat(f *testing.F, format interfaces.Format, seeds ...string) {
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	c, err := core.NewConverter(nil, nil)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		result, err := c.Convert(data, format)
		if err != nil {
			if !interfaces.IsInputError(err) {
				t.Fatalf("unclassified error for %q: %v", data, err)
			}
			return
		}
		if !wellFormed(result.Markup) {
			t.Fatalf("markup is not well-formed for %q:\n%s", data, result.Markup)
		}
		if !wellFormed(result.Schema) {
			t.Fatalf("schema is not well-formed for %q:\n%s", data, result.Schema)
		}
	})
}

func wellFormed(doc string) bool {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			return err == io.EOF
		}
	}
}

func FuzzConvertJSON(f *testing.F) {
	fuzzFormat(f, interfaces.FormatJSON,
		`{"a": 1, "b": {"c": "x"}, "d": [1,2]}`,
		`{"First Name": null, "1st": [{"k": true}]}`,
		`{"esc": "<&>\"\n"}`,
	)
}

func FuzzConvertCSV(f *testing.F) {
	fuzzFormat(f, interfaces.FormatCSV,
		"First Name,Age\nAnn,30\n",
		"a;b;c\n1;2;3\n",
		"\"x,y\",z\n\"1\n2\",3\n",
	)
}

func FuzzConvertXML(f *testing.F) {
	fuzzFormat(f, interfaces.FormatXML,
		`<r a="1" b="true"><x/></r>`,
		`<?xml version="1.0" encoding="ISO-8859-1"?><r><a>caf`+"\xe9"+`</a></r>`,
		`<r xmlns:p="urn:x"><p:a p:b="2">t</p:a></r>`,
	)
}
