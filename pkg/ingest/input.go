/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: input.go
Description: Input preparation shared by all ingestors. Strips byte order marks and
transcodes UTF-16 input to UTF-8 before any format-specific parsing happens.
*/

package ingest

import (
	"bytes"
	"fmt"

	"github.com/kleascm/xmlforge/pkg/interfaces"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// prepare returns data as UTF-8 without a byte order mark. transcoded is true
// when the input was UTF-16 and had to be converted.
func prepare(data []byte) (out []byte, transcoded bool, err error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], false, nil
	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return nil, false, fmt.Errorf("%w: cannot decode UTF-16 input: %v", interfaces.ErrMalformedInput, err)
		}
		return out, true, nil
	default:
		return data, false, nil
	}
}
