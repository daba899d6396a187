package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

// Spec is the serialized form of a fitted model: a named envelope with
// implementation-specific parameters. Implementations marshal their
// parameters into Params and reconstruct themselves from it.
type Spec struct {
	Name          string          `json:"name"`
	FormatVersion string          `json:"format_version"`
	Params        json.RawMessage `json:"params"`
}

// SaveSpec writes a model spec to a file.
func SaveSpec(spec *Spec, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating model file %s", filename)
	}
	defer f.Close()
	return SaveSpecToWriter(spec, f)
}

// SaveSpecToWriter writes a model spec to w as indented JSON.
func SaveSpecToWriter(spec *Spec, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spec); err != nil {
		return errors.Wrap(err, "encoding model spec")
	}
	return nil
}

// LoadSpec reads a model spec from a file.
func LoadSpec(filename string) (*Spec, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model file %s", filename)
	}
	defer f.Close()
	return LoadSpecFromReader(f)
}

// LoadSpecFromReader reads a model spec from r.
func LoadSpecFromReader(r io.Reader) (*Spec, error) {
	var spec Spec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "decoding model spec")
	}
	if spec.Name == "" {
		return nil, errors.NewValueError("LoadSpec", "model spec has no name")
	}
	return &spec, nil
}
