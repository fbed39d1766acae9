package display

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gabssanto/gestor/internal/scan"
	"github.com/gabssanto/gestor/internal/tag"
)

// ManifestVersion is bumped whenever the manifest layout changes.
const ManifestVersion = 1

// Manifest is the YAML form of a preview
type Manifest struct {
	Version int                 `yaml:"version"`
	Tag     string              `yaml:"tag"`
	Folder  string              `yaml:"folder"`
	Source  string              `yaml:"source"`
	Target  string              `yaml:"target,omitempty"`
	Files   int                 `yaml:"files"`
	Groups  map[string][]string `yaml:"groups"`
}

// NewManifest builds a Manifest with every group sorted.
func NewManifest(groups scan.Groups, tagName, source, target string) Manifest {
	m := Manifest{
		Version: ManifestVersion,
		Tag:     tagName,
		Folder:  tag.Marker(tagName),
		Source:  source,
		Target:  target,
		Files:   groups.Len(),
		Groups:  make(map[string][]string, len(groups)),
	}
	for _, ext := range groups.Extensions() {
		m.Groups[ext] = groups.Sorted(ext)
	}
	return m
}

// WriteManifest marshals m as YAML to w.
func WriteManifest(w io.Writer, m Manifest) error {
	output, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	_, err = w.Write(output)
	return err
}
