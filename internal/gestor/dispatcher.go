// Package gestor runs the scan, preview, confirm and move steps behind each
// subcommand.
package gestor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/gabssanto/gestor/internal/config"
	"github.com/gabssanto/gestor/internal/confirm"
	"github.com/gabssanto/gestor/internal/display"
	"github.com/gabssanto/gestor/internal/mover"
	"github.com/gabssanto/gestor/internal/scan"
	"github.com/gabssanto/gestor/internal/tag"
)

// Dispatcher wires the scanner, printer and mover together. Every field is
// required except Log.
type Dispatcher struct {
	FS      billy.Filesystem
	Out     io.Writer
	Confirm confirm.Confirmer
	Log     *slog.Logger
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

// Show scans and prints the preview.
func (d *Dispatcher) Show(p config.Params) (State, error) {
	result, state, err := d.scanAndPreview(p, "")
	if err != nil {
		return state, err
	}

	d.logger().Debug("preview complete", "tag", p.Tag, "files", result.Groups.Len())
	return state, nil
}

// Process scans, prints the preview and, when running dry or once the user
// agrees, moves every matched file under the target.
func (d *Dispatcher) Process(p config.Params) (State, error) {
	result, state, err := d.scanAndPreview(p, p.Target)
	if err != nil {
		return state, err
	}

	if !p.DryRun {
		ok, err := d.Confirm.Confirm(confirm.Prompt)
		if err != nil {
			return state, err
		}
		if !ok {
			d.logger().Info("move declined", "tag", p.Tag)
			return StateAborted, nil
		}
	}

	state = StateConfirmed

	m := mover.New(d.FS, display.NewRecorder(d.Out))
	moved, err := m.Apply(result.Groups, p.Tag, p.Target, p.DryRun)
	if err != nil {
		return state, err
	}

	d.logger().Info("move complete",
		"tag", p.Tag,
		"target", p.Target,
		"files", len(moved.Moves),
		"dry_run", p.DryRun,
	)
	return StateMoved, nil
}

// Tags prints every tag found in file names under the source directory.
func (d *Dispatcher) Tags(p config.Params) error {
	counts, scanErrs, err := scan.Tags(d.FS, p.Source)
	if err != nil {
		return err
	}
	d.warn(scanErrs)

	display.TagTable(d.Out, p.Source, counts)
	return nil
}

func (d *Dispatcher) scanAndPreview(p config.Params, target string) (*scan.Result, State, error) {
	if err := p.Validate(); err != nil {
		return nil, StateIdle, err
	}

	result, err := scan.Scan(d.FS, p.Source, p.Tag)
	if err != nil {
		return nil, StateIdle, err
	}
	d.warn(result.Errors)
	d.logger().Debug("scan complete",
		"command", p.Command,
		"source", p.Source,
		"tag", p.Tag,
		"extensions", len(result.Groups),
		"files", result.Groups.Len(),
	)
	d.logMatches(result.Groups)

	if strings.EqualFold(p.Format, config.FormatYAML) {
		err = display.WriteManifest(d.Out, display.NewManifest(result.Groups, p.Tag, p.Source, target))
	} else {
		err = display.RenderTree(d.Out, result.Groups, p.Tag)
	}
	if err != nil {
		return nil, StateScanned, fmt.Errorf("failed to write preview: %w", err)
	}

	return result, StatePreviewed, nil
}

// logMatches records, for each matched file, the first tag in its name. It
// can differ from the requested tag when a name carries several.
func (d *Dispatcher) logMatches(groups scan.Groups) {
	log := d.logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, ext := range groups.Extensions() {
		for _, path := range groups[ext] {
			log.Debug("matched", "path", path, "ext", ext, "first_tag", tag.ExtractOr(filepath.Base(path), tag.None))
		}
	}
}

func (d *Dispatcher) warn(errs []scan.ScanError) {
	for _, e := range errs {
		d.logger().Warn("skipped unreadable directory", "path", e.Path, "error", e.Err)
	}
}
