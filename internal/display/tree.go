package display

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gabssanto/gestor/internal/scan"
	"github.com/gabssanto/gestor/internal/tag"
)

// TreeRoot is the first line of every preview.
const TreeRoot = "/gestor"

const (
	branch = "├──"
	last   = "└──"
)

// RenderTree writes a preview of how groups will be laid out under the tag
// folder. Extensions and files are sorted; every file line uses the closing
// glyph regardless of its position.
func RenderTree(w io.Writer, groups scan.Groups, tagName string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, TreeRoot)
	fmt.Fprintf(bw, "%s %s\n", last, tag.Marker(tagName))

	exts := groups.Extensions()
	for i, ext := range exts {
		glyph := branch
		if i == len(exts)-1 {
			glyph = last
		}
		fmt.Fprintf(bw, "    %s %s/\n", glyph, ext)

		for _, path := range groups.Sorted(ext) {
			fmt.Fprintf(bw, "        %s %s\n", last, filepath.Base(path))
		}
	}

	return bw.Flush()
}
