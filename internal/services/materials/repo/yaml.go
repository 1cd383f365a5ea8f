// Package repo holds the material sources: a YAML file and a Postgres table
package repo

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"os"

	perr "trainerbot/internal/platform/errors"
	dom "trainerbot/internal/services/materials/domain"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// File is the YAML document layout
type File struct {
	Default   string         `yaml:"default"`
	Materials []dom.Material `yaml:"materials"`
}

// YAML reads materials from a file, or from the built in table when Path is empty
type YAML struct {
	Path string

	// read is swapped in tests
	read func(string) ([]byte, error)
}

var _ dom.SourcePort = (*YAML)(nil)

// NewYAML returns a YAML source for path
func NewYAML(path string) *YAML { return &YAML{Path: path, read: os.ReadFile} }

// Load implements domain.SourcePort
func (y *YAML) Load(ctx context.Context) ([]dom.Material, error) {
	f, err := y.File(ctx)
	if err != nil {
		return nil, err
	}
	return f.Materials, nil
}

// File returns the whole document, including the default task id
func (y *YAML) File(_ context.Context) (File, error) {
	src := defaultYAML
	if y.Path != "" {
		read := y.read
		if read == nil {
			read = os.ReadFile
		}
		b, err := read(y.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return File{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "materials: file %s", y.Path)
			}
			return File{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "materials: read %s", y.Path)
		}
		src = b
	}
	return Decode(bytes.NewReader(src))
}

// Decode parses one YAML document, unknown keys are rejected
func Decode(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, perr.InvalidArgf("materials: empty document")
		}
		return File{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "materials: decode yaml")
	}
	return f, nil
}
