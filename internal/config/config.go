// Package config loads projector settings for the mdscale command from an
// optional TOML file and MDSCALE_* environment variables, in that order, on
// top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/mdscale/eigen"
	"github.com/katalvlaran/mdscale/mds"
)

// Solver names accepted in configuration.
const (
	SolverLAPACK = "lapack"
	SolverJacobi = "jacobi"
)

// ErrInvalid marks a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved projector configuration.
//
// Seed 0 leaves the fallback layout seeded from the clock.
// MaxSweeps and Tolerance only apply to the jacobi solver.
type Config struct {
	Dimensions int     `toml:"dimensions" env:"MDSCALE_DIMENSIONS"`
	Seed       int64   `toml:"seed" env:"MDSCALE_SEED"`
	Solver     string  `toml:"solver" env:"MDSCALE_SOLVER"`
	MaxSweeps  int     `toml:"max_sweeps" env:"MDSCALE_MAX_SWEEPS"`
	Tolerance  float64 `toml:"tolerance" env:"MDSCALE_TOLERANCE"`
	Negative   string  `toml:"negative" env:"MDSCALE_NEGATIVE"`
	Epsilon    float64 `toml:"epsilon" env:"MDSCALE_EPSILON"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dimensions: mds.DefaultDimensions,
		Solver:     SolverLAPACK,
		MaxSweeps:  eigen.DefaultMaxSweeps,
		Tolerance:  eigen.DefaultTolerance,
		Negative:   mds.DefaultNegativePolicy.String(),
		Epsilon:    mds.DefaultEpsilon,
	}
}

// Load resolves defaults, then the TOML file at path (skipped when empty),
// then environment overrides, and validates the result.
// Unknown keys in the file are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("decode %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Dimensions < 1 {
		return fmt.Errorf("dimensions=%d: %w", c.Dimensions, ErrInvalid)
	}
	switch c.Solver {
	case SolverLAPACK, SolverJacobi:
	default:
		return fmt.Errorf("solver=%q: %w", c.Solver, ErrInvalid)
	}
	if c.MaxSweeps < 1 {
		return fmt.Errorf("max_sweeps=%d: %w", c.MaxSweeps, ErrInvalid)
	}
	if !(c.Tolerance > 0 && c.Tolerance < 1) {
		return fmt.Errorf("tolerance=%g: %w", c.Tolerance, ErrInvalid)
	}
	if !(c.Epsilon >= 0) || math.IsInf(c.Epsilon, 1) {
		return fmt.Errorf("epsilon=%g: %w", c.Epsilon, ErrInvalid)
	}
	if _, err := mds.ParseNegativePolicy(c.Negative); err != nil {
		return fmt.Errorf("negative=%q: %w", c.Negative, ErrInvalid)
	}
	return nil
}

// SolverImpl returns the eigen.Solver named by c.Solver.
func (c Config) SolverImpl() eigen.Solver {
	if c.Solver == SolverJacobi {
		return eigen.Jacobi{Tol: c.Tolerance, MaxSweeps: c.MaxSweeps}
	}
	return eigen.LAPACK{}
}

// Options converts c into projector options. c must have passed Validate.
func (c Config) Options() []mds.Option {
	policy, _ := mds.ParseNegativePolicy(c.Negative)
	opts := []mds.Option{
		mds.WithDimensions(c.Dimensions),
		mds.WithSolver(c.SolverImpl()),
		mds.WithNegativePolicy(policy),
		mds.WithEpsilon(c.Epsilon),
	}
	if c.Seed != 0 {
		opts = append(opts, mds.WithSeed(c.Seed))
	}
	return opts
}
