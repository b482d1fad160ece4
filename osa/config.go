package osa

import (
	"encoding/json"
	"log"
	"os"

	"github.com/pkg/errors"
)

// Config selects and parameterizes the stages of an Estimator.
//
// It is typically decoded from a JSON file.
type Config struct {
	NormalEstimator string `json:"normal_estimator,omitempty"`
	Reconstructor   string `json:"reconstructor,omitempty"`
	Smoother        string `json:"smoother,omitempty"`

	KNN         int                `json:"knn,omitempty"`
	Reconstruct ReconstructOptions `json:"reconstruct"`

	// Taubin overrides the parameters of the "taubin" smoother.
	Taubin *TaubinSmoother `json:"taubin,omitempty"`
}

// DefaultConfig creates a Config which uses the built-in stages.
func DefaultConfig() *Config {
	return &Config{
		NormalEstimator: "knn",
		Reconstructor:   "implicit",
		Smoother:        "taubin",
	}
}

// LoadConfig reads a JSON config file.
//
// Fields missing from the file keep the values of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	defer f.Close()
	config := DefaultConfig()
	if err := json.NewDecoder(f).Decode(config); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return config, nil
}

// Estimator creates an Estimator from the config.
//
// If a named stage is not registered, ErrCapabilityUnavailable
// is returned.
func (c *Config) Estimator(logger *log.Logger) (*Estimator, error) {
	normals, err := LookupNormalEstimator(c.NormalEstimator)
	if err != nil {
		return nil, err
	}
	recon, err := LookupReconstructor(c.Reconstructor)
	if err != nil {
		return nil, err
	}
	smoother, err := LookupSmoother(c.Smoother)
	if err != nil {
		return nil, err
	}
	if c.Taubin != nil && c.Smoother == "taubin" {
		smoother = c.Taubin
	}
	if _, err := c.Reconstruct.WithDefaults(); err != nil {
		return nil, err
	}
	if c.KNN < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "knn %d is negative", c.KNN)
	}
	return &Estimator{
		Normals:       normals,
		Reconstructor: recon,
		Smoother:      smoother,
		Options:       c.Reconstruct,
		KNN:           c.KNN,
		Logger:        logger,
	}, nil
}
