/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sniff.go
Description: Delimiter sniffer for tabular text. Looks at the leading bytes of a document
and picks the separator whose per-line frequency is the most consistent. The sample is
only read, never consumed, so parsing always starts from the first byte.
*/

package ingest

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/kleascm/xmlforge/pkg/interfaces"
)

const (
	// SampleSize is how many leading bytes the sniffer inspects
	SampleSize = 1024

	minConsistency = 0.9
)

// preferred breaks ties between equally consistent candidates
var preferred = []byte{',', '\t', ';', ' ', ':'}

// candidateStats summarises how one character is distributed across sample lines
type candidateStats struct {
	char        byte
	mode        int
	consistency float64
}

// SniffDelimiter infers the field separator from the start of data
func SniffDelimiter(data []byte) (rune, error) {
	return SniffDelimiterSample(data, SampleSize)
}

// SniffDelimiterSample is SniffDelimiter with an explicit sample size
func SniffDelimiterSample(data []byte, sampleSize int) (rune, error) {
	if sampleSize <= 0 {
		sampleSize = SampleSize
	}
	sample := data
	truncated := false
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
		truncated = true
	}

	lines := sampleLines(sample, truncated)
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: empty sample", interfaces.ErrDelimiterDetection)
	}

	stats := make([]candidateStats, 0, 8)
	for c := 0; c < 128; c++ {
		char := byte(c)
		if !isCandidate(char) {
			continue
		}
		if s, ok := measure(char, lines); ok {
			stats = append(stats, s)
		}
	}

	for threshold := 1.0; threshold >= minConsistency-1e-9; threshold -= 0.01 {
		var winners []candidateStats
		for _, s := range stats {
			if s.consistency >= threshold-1e-9 {
				winners = append(winners, s)
			}
		}
		if len(winners) == 0 {
			continue
		}
		return rune(pick(winners)), nil
	}

	return 0, fmt.Errorf("%w: no consistent separator in %d line(s)", interfaces.ErrDelimiterDetection, len(lines))
}

// sampleLines splits the sample into non-empty records. Newlines inside double quotes
// do not end a record. A truncated sample loses its last, possibly partial, record
// unless it is the only one.
func sampleLines(sample []byte, truncated bool) [][]byte {
	var raw [][]byte
	start := 0
	quoted := false
	for i, c := range sample {
		switch c {
		case '"':
			quoted = !quoted
		case '\n':
			if !quoted {
				raw = append(raw, sample[start:i])
				start = i + 1
			}
		}
	}
	if start < len(sample) && (!truncated || len(raw) == 0) {
		raw = append(raw, sample[start:])
	}

	lines := make([][]byte, 0, len(raw))
	for _, line := range raw {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isCandidate(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '"', c == '\'', c == '\n', c == '\r':
		return false
	case c < 0x20 && c != '\t':
		return false
	case c == 0x7F:
		return false
	}
	return true
}

// measure counts char outside double quotes on every line and reports its modal
// count and how many lines share it
func measure(char byte, lines [][]byte) (candidateStats, bool) {
	freq := make(map[int]int)
	for _, line := range lines {
		freq[countUnquoted(line, char)]++
	}

	mode, modeLines := 0, 0
	for count, n := range freq {
		if n > modeLines || (n == modeLines && count > mode) {
			mode, modeLines = count, n
		}
	}
	if mode == 0 {
		return candidateStats{}, false
	}
	return candidateStats{
		char:        char,
		mode:        mode,
		consistency: float64(modeLines) / float64(len(lines)),
	}, true
}

func countUnquoted(line []byte, char byte) int {
	count := 0
	quoted := false
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
		case c == char && !quoted:
			count++
		}
	}
	return count
}

// pick chooses among equally acceptable candidates
func pick(winners []candidateStats) byte {
	if len(winners) == 1 {
		return winners[0].char
	}
	for _, p := range preferred {
		for _, w := range winners {
			if w.char == p {
				return p
			}
		}
	}
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].consistency != winners[j].consistency {
			return winners[i].consistency > winners[j].consistency
		}
		if winners[i].mode != winners[j].mode {
			return winners[i].mode > winners[j].mode
		}
		return winners[i].char < winners[j].char
	})
	return winners[0].char
}
