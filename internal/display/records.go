package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/gabssanto/gestor/internal/mover"
)

// Recorder prints one line per move as the mover reports it.
type Recorder struct {
	w         io.Writer
	simulated *color.Color
	committed *color.Color
}

// NewRecorder returns a Recorder writing to w. Colors follow fatih/color's
// terminal detection.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		w:         w,
		simulated: color.New(color.FgYellow),
		committed: color.New(color.FgGreen),
	}
}

// Report implements mover.Reporter.
func (r *Recorder) Report(m mover.Move) error {
	prefix := r.committed.Sprint("✓")
	if m.Simulated {
		prefix = r.simulated.Sprint("[dry-run]")
	}
	_, err := fmt.Fprintf(r.w, "%s mv \"%s\" -> \"%s\"\n", prefix, m.Source, m.Dest)
	return err
}
