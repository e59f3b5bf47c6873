// Package merge combines multiple XUnit report trees into one report and
// aggregates their summary attributes.
package merge

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/drew/xunitmerge/internal/xmlout"
	"github.com/drew/xunitmerge/internal/xmltree"
)

// statKeys are the aggregate attributes summed into the merged root.
// All are integer counts except time, which is a float seconds total.
var statKeys = []string{"tests", "disabled", "skipped", "failures", "errors", "time"}

// Merge combines the given report trees into a single tree.
//
// A single tree is returned untouched: no container is introduced and no
// attributes are rewritten. For two or more trees a new <testsuites>
// container is created whose children are the direct children of every
// input root, in input order. Aggregate attributes are summed over the
// childless second-level elements only (elements with children are nested
// suite groups, whose rows are already counted one level down); summation
// is deliberately one level deep, never recursive. The container never
// carries a name attribute, since no single suite name applies.
func Merge(trees []*xmltree.Element) *xmltree.Element {
	if len(trees) == 1 {
		return trees[0]
	}

	merged := xmltree.NewElement("testsuites")
	for _, t := range trees {
		merged.Append(t.Children...)
	}

	stats := make(map[string]float64, len(statKeys))
	timeSeen := false
	for _, child := range merged.Children {
		if len(child.Children) > 0 {
			continue
		}
		for _, key := range statKeys {
			val := child.Attr(key)
			if val == "" {
				continue
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				// non-numeric value, skip this attribute for this row
				continue
			}
			stats[key] += n
			if key == "time" {
				timeSeen = true
			}
		}
	}

	for _, key := range statKeys {
		if key == "time" {
			merged.SetAttr(key, formatTime(stats[key], timeSeen))
		} else {
			merged.SetAttr(key, strconv.FormatInt(int64(stats[key]), 10))
		}
	}
	merged.DeleteAttr("name")

	return merged
}

// formatTime keeps fractional precision but always shows whole-number
// totals with a trailing .0 so the attribute reads as a duration. A total
// with no contributing rows stays a bare 0.
func formatTime(total float64, seen bool) string {
	if !seen {
		return "0"
	}
	s := strconv.FormatFloat(total, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Options controls MergeFiles output
type Options struct {
	// Tags whose text is written as CDATA; nil means xmlout.DefaultCDATATags
	CDATATags []string
	// Suppress the XML declaration header
	NoDeclaration bool
	// Applied to the merged tree, in order, before writing
	Transforms []Transform
}

// MergeFiles parses each input file in sequence, merges the trees, applies
// any transforms, and writes the result to output. Inputs are parsed one
// at a time; a parse or read failure aborts before the output file is
// created, so a failed merge never leaves partial output behind.
func MergeFiles(inputs []string, output string, opts Options) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}

	trees := make([]*xmltree.Element, 0, len(inputs))
	for _, path := range inputs {
		root, err := xmltree.ParseFile(path)
		if err != nil {
			return err
		}
		trees = append(trees, root)
	}

	merged := Merge(trees)
	for _, t := range opts.Transforms {
		merged = t(merged)
	}

	tags := opts.CDATATags
	if tags == nil {
		tags = xmlout.DefaultCDATATags
	}
	var wopts []xmlout.Option
	if opts.NoDeclaration {
		wopts = append(wopts, xmlout.WithoutDeclaration())
	}
	writer := xmlout.NewWriter(tags, wopts...)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := writer.WriteDocument(f, merged); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	return f.Close()
}
