/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compare.go
Description: Compare command implementation. Converts two inputs and prints a line
diff of their markup and of their inferred schemas, e.g. to check that a CSV export
and a JSON export of the same data produce the same schema.
*/

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/logging"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DiffOp marks a diff line as kept, added or removed
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-oriented diff
type DiffLine struct {
	Op   DiffOp
	Text string
}

// RunCompare converts both arguments and prints their differences
func RunCompare(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	config, err := ConversionConfig()
	if err != nil {
		return err
	}

	identical, err := Compare(args[0], args[1], viper.GetString("compare.format"), config, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !identical && viper.GetBool("compare.fail_on_diff") {
		return fmt.Errorf("%s and %s differ", args[0], args[1])
	}
	return nil
}

// Compare converts a and b and writes the diffs. Output is laid out one element per
// line regardless of config so the diff stays readable.
func Compare(a, b, format string, config *core.Config, logger *logging.Logger, stdin io.Reader, out io.Writer) (bool, error) {
	layout := *config
	layout.Compact = false
	if layout.Indent == "" {
		layout.Indent = "  "
	}

	converter, err := core.NewConverter(&layout, logger.GetLogger(), logging.NewConversionReporter(logger))
	if err != nil {
		return false, err
	}

	left, err := convertPath(converter, a, format, stdin)
	if err != nil {
		return false, err
	}
	right, err := convertPath(converter, b, format, stdin)
	if err != nil {
		return false, err
	}

	p := newPrinter(out)
	markupDiff := DiffLines(left.Markup, right.Markup)
	schemaDiff := DiffLines(left.Schema, right.Schema)
	identical := !hasChanges(markupDiff) && !hasChanges(schemaDiff)

	p.Printf("%s %s\n%s %s\n", p.fail("---"), a, p.ok("+++"), b)
	printDiff(p, "xml", markupDiff)
	printDiff(p, "xsd", schemaDiff)
	return identical, nil
}

func convertPath(converter *core.Converter, path, format string, stdin io.Reader) (*core.Result, error) {
	data, err := ReadInput(path, stdin)
	if err != nil {
		return nil, err
	}
	f, err := ResolveFormat(format, path, data)
	if err != nil {
		return nil, err
	}
	result, err := converter.Convert(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// DiffLines returns the line diff between a and b
func DiffLines(a, b string) []DiffLine {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

func hasChanges(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

func printDiff(p *printer, label string, lines []DiffLine) {
	if !hasChanges(lines) {
		p.Printf("%s %s identical\n", p.title("@@"), label)
		return
	}
	p.Printf("%s %s\n", p.title("@@"), label)
	for _, l := range lines {
		switch l.Op {
		case DiffInsert:
			p.Println(p.ok("+" + l.Text))
		case DiffDelete:
			p.Println(p.fail("-" + l.Text))
		default:
			p.Println(p.faint(" " + l.Text))
		}
	}
}
