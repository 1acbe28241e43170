package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/copyleftdev/zerofun/internal/dispatch"
	apperrors "github.com/copyleftdev/zerofun/internal/errors"
)

// Datafile is the YAML document describing one solve:
//
//	method: Brent
//	expression: 0.5 - exp(pi*x)
//	derivative: -pi*exp(pi*x)
//	parameters:
//	  a: -1
//	  b: 1
//	  tol: 1.0e-4
//	  bracket:
//	    enabled: false
//	    x1: 0.5
//
// Keys left out of parameters keep their defaults.
type Datafile struct {
	Method     string          `yaml:"method"`
	Expression string          `yaml:"expression"`
	Derivative string          `yaml:"derivative"`
	Parameters dispatch.Params `yaml:"parameters"`
}

// NewDatafile returns a datafile holding the default parameters.
func NewDatafile() *Datafile {
	return &Datafile{Parameters: dispatch.DefaultParams()}
}

// LoadDatafile reads and validates the datafile at path.
func LoadDatafile(path string) (*Datafile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "open datafile %s", path).
			WithOperation("load datafile").
			WithComponent("config")
	}
	defer f.Close()

	df, err := ParseDatafile(f)
	if err != nil {
		return nil, apperrors.Wrapf(err, "datafile %s", path).
			WithOperation("load datafile").
			WithComponent("config")
	}
	return df, nil
}

// ParseDatafile decodes a datafile from r. Unknown keys are rejected.
func ParseDatafile(r io.Reader) (*Datafile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	df := NewDatafile()
	if len(bytes.TrimSpace(data)) == 0 {
		return df, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(df); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidParameter, err.Error()).
			WithOperation("parse datafile").
			WithComponent("config")
	}

	if df.Method != "" {
		if _, err := dispatch.ParseMethod(df.Method); err != nil {
			return nil, err
		}
	}
	if err := df.Parameters.Validate(); err != nil {
		return nil, err
	}
	return df, nil
}
