// Package config holds the resolved parameters of a single gestor run.
package config

import (
	"fmt"
	"strings"
)

// Command is the subcommand being run.
type Command int

const (
	CommandShow Command = iota
	CommandProcess
	CommandTags
)

func (c Command) String() string {
	switch c {
	case CommandShow:
		return "show"
	case CommandProcess:
		return "process"
	case CommandTags:
		return "tags"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Output formats for the preview.
const (
	FormatTree = "tree"
	FormatYAML = "yaml"
)

// Defaults for the directory flags.
const (
	DefaultSource = "."
	DefaultTarget = "./gestor"
)

// Params are the run parameters resolved from the command line. They are not
// modified once a run starts.
type Params struct {
	Command Command
	Tag     string // without brackets
	Source  string
	Target  string // process only
	DryRun  bool
	Format  string
}

// DefaultParams returns the parameters used when no flag overrides them.
func DefaultParams() Params {
	return Params{
		Source: DefaultSource,
		Target: DefaultTarget,
		Format: FormatTree,
	}
}

// Validate checks for values the flags layer cannot rule out on its own.
// Tags and paths are deliberately not checked; the filesystem has the final
// say on what is legal.
func (p Params) Validate() error {
	switch strings.ToLower(p.Format) {
	case FormatTree, FormatYAML:
	default:
		return fmt.Errorf("invalid --format %q (must be %s or %s)", p.Format, FormatTree, FormatYAML)
	}

	if p.Source == "" {
		return fmt.Errorf("--source must not be empty")
	}
	if p.Command == CommandProcess && p.Target == "" {
		return fmt.Errorf("--target must not be empty")
	}
	return nil
}
