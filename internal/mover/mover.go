// Package mover relocates scanned files into <target>/[tag]/<extension>/.
package mover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"

	"github.com/gabssanto/gestor/internal/scan"
	"github.com/gabssanto/gestor/internal/tag"
)

var (
	// ErrDestinationUnwritable is returned when a destination directory
	// cannot be created.
	ErrDestinationUnwritable = errors.New("destination directory is unwritable")
	// ErrRelocationFailure is returned when a single file cannot be moved.
	ErrRelocationFailure = errors.New("relocation failed")
)

// Move is one planned or committed relocation.
type Move struct {
	Source    string
	Dest      string
	Simulated bool
}

// Reporter receives every move as soon as it happens.
type Reporter interface {
	Report(m Move) error
}

// MoveError describes the move that stopped a run, along with the moves that
// were committed before it. Nothing is rolled back.
type MoveError struct {
	Move      Move
	Completed []Move
	Err       error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%d move(s) completed before failure: mv %q -> %q: %v",
		len(e.Completed), e.Move.Source, e.Move.Dest, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Result lists the moves performed (or simulated) by Apply.
type Result struct {
	Moves []Move
}

// Mover relocates grouped files on a filesystem.
type Mover struct {
	FS       billy.Filesystem
	Reporter Reporter
}

// New returns a Mover writing records to r.
func New(fs billy.Filesystem, r Reporter) *Mover {
	return &Mover{FS: fs, Reporter: r}
}

// DestDir returns target/[tagName]/ext. An empty ext yields target/[tagName].
func DestDir(target, tagName, ext string) string {
	return filepath.Join(target, tag.Marker(tagName), ext)
}

// Apply moves every file in groups to DestDir(target, tagName, ext). Groups are
// processed in sorted extension order and files in scan order. With dryRun
// set the filesystem is left untouched and each move is only reported.
//
// An existing file at a destination path is overwritten. The first failure
// aborts the run with a *MoveError.
func (m *Mover) Apply(groups scan.Groups, tagName, target string, dryRun bool) (*Result, error) {
	result := &Result{}

	for _, ext := range groups.Extensions() {
		destDir := DestDir(target, tagName, ext)

		if !dryRun {
			if err := m.FS.MkdirAll(destDir, 0755); err != nil {
				return result, &MoveError{
					Move:      Move{Source: firstOf(groups[ext]), Dest: destDir},
					Completed: result.Moves,
					Err:       fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, destDir, err),
				}
			}
		}

		for _, src := range groups[ext] {
			mv := Move{
				Source:    src,
				Dest:      filepath.Join(destDir, filepath.Base(src)),
				Simulated: dryRun,
			}

			if !dryRun {
				if err := m.relocate(mv.Source, mv.Dest); err != nil {
					return result, &MoveError{
						Move:      mv,
						Completed: result.Moves,
						Err:       fmt.Errorf("%w: %w", ErrRelocationFailure, err),
					}
				}
			}

			result.Moves = append(result.Moves, mv)
			if m.Reporter != nil {
				if err := m.Reporter.Report(mv); err != nil {
					return result, fmt.Errorf("failed to report move: %w", err)
				}
			}
		}
	}

	return result, nil
}

// relocate renames src to dst, falling back to copy and remove when the two
// live on different devices.
func (m *Mover) relocate(src, dst string) error {
	err := m.FS.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := m.copyFile(src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := m.FS.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

func (m *Mover) copyFile(src, dst string) (err error) {
	info, err := m.FS.Stat(src)
	if err != nil {
		return err
	}

	in, err := m.FS.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := m.FS.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	if ch, ok := m.FS.(billy.Change); ok {
		if err := ch.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			return err
		}
	}
	return nil
}

func firstOf(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
