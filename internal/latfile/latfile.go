package latfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a lattice file, choosing the format by extension.
func Load(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lat", ".madx", ".seq":
		p, err := NewParser()
		if err != nil {
			return nil, err
		}
		return p.ParseFile(path)
	default:
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		return ReadYAML(fh)
	}
}

// ReadYAML decodes a YAML lattice:
//
//	name: ring
//	elements:
//	  - {name: QF, kind: quadrupole, length: 0.3, k1: 1.2}
func ReadYAML(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("latfile: decode yaml: %w", err)
	}
	if len(f.Elements) == 0 {
		return nil, ErrNoBeamline
	}
	return &f, nil
}

// WriteYAML encodes f in the format ReadYAML accepts.
func WriteYAML(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
