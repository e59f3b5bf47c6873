package merge

import (
	"github.com/acarl005/stripansi"
	"github.com/drew/xunitmerge/internal/xmltree"
)

// Transform rewrites a merged tree before it is written. It may modify the
// tree in place and return it, or return a replacement tree.
type Transform func(*xmltree.Element) *xmltree.Element

// StripANSI returns a transform that removes ANSI escape sequences from
// the text of the given tags. CI jobs frequently capture colored terminal
// output into system-out/system-err, and the raw escape bytes are invalid
// in XML even inside CDATA sections.
func StripANSI(tags []string) Transform {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return func(root *xmltree.Element) *xmltree.Element {
		root.Walk(func(e *xmltree.Element) {
			if set[e.Tag] && e.Text != "" {
				e.Text = stripansi.Strip(e.Text)
			}
		})
		return root
	}
}
