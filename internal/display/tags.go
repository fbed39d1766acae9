package display

import (
	"fmt"
	"io"

	"github.com/gabssanto/gestor/internal/tag"
)

// TagTable lists tag counts, one per line.
func TagTable(w io.Writer, source string, counts []tag.Count) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "No tagged files found under '%s'\n", source)
		return
	}

	fmt.Fprintln(w, "Tags:")
	for _, c := range counts {
		plural := ""
		if c.Files != 1 {
			plural = "s"
		}
		fmt.Fprintf(w, "  %-20s %d file%s\n", c.Tag, c.Files, plural)
	}
	fmt.Fprintf(w, "\nTotal: %d tags\n", len(counts))
}
