package linear

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/core/model"
	"github.com/ChadGueli/bigboost/pkg/errors"
)

const (
	specName          = "linear.Regression"
	specFormatVersion = "1.0"
)

// params is the JSON parameter block stored inside a model.Spec.
type params struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`
}

// Export writes the fitted model to a JSON file that Load can reconstruct.
func (lr *Regression) Export(filename string) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError(specName, "Export")
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer f.Close()
	return lr.ExportToWriter(f)
}

// ExportToWriter writes the fitted model to w.
func (lr *Regression) ExportToWriter(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError(specName, "ExportToWriter")
	}

	coefficients := make([]float64, lr.Weights.Len())
	for i := range coefficients {
		coefficients[i] = lr.Weights.AtVec(i)
	}

	raw, err := json.Marshal(params{
		Coefficients: coefficients,
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
	})
	if err != nil {
		return errors.Wrap(err, "encoding model parameters")
	}

	spec := model.Spec{
		Name:          specName,
		FormatVersion: specFormatVersion,
		Params:        raw,
	}
	return model.SaveSpecToWriter(&spec, w)
}

// Load reads a model previously written by Export.
func (lr *Regression) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "opening %s", filename)
	}
	defer f.Close()
	return lr.LoadFromReader(f)
}

// LoadFromReader reads a model spec from r and restores the fitted state.
func (lr *Regression) LoadFromReader(r io.Reader) error {
	spec, err := model.LoadSpecFromReader(r)
	if err != nil {
		return err
	}
	if spec.Name != specName {
		return errors.Newf("expected model %q, got %q", specName, spec.Name)
	}

	var p params
	if err := json.Unmarshal(spec.Params, &p); err != nil {
		return errors.Wrap(err, "decoding model parameters")
	}
	if p.NFeatures <= 0 || len(p.Coefficients) != p.NFeatures {
		return errors.NewValueError("linear.Load", "inconsistent coefficient count")
	}

	lr.NFeatures = p.NFeatures
	lr.Intercept = p.Intercept
	lr.Weights = mat.NewVecDense(len(p.Coefficients), p.Coefficients)
	lr.SetFitted()
	return nil
}
