package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mdscale/internal/config"
	"github.com/katalvlaran/mdscale/mds"
)

// projectFlags are the command-line overrides for one run.
type projectFlags struct {
	configPath string
	input      string
	output     string
	dims       int
	seed       int64
	solver     string
	negative   string
	maxSweeps  int
}

func newProjectCmd() *cobra.Command {
	var f projectFlags
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "project [matrix.csv|matrix.json]",
		Short: "Project a dissimilarity matrix into low-dimensional coordinates",
		Long: `Project reads an N×N dissimilarity matrix (CSV or JSON, from a file or
stdin) and writes N coordinates to stdout, in input row order.

When the decomposition cannot produce a metric layout (for example every
item is identical) a random layout in [0,1) is written instead and a warning
is logged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("dims") {
				cfg.Dimensions = f.dims
			}
			if flags.Changed("seed") {
				cfg.Seed = f.seed
			}
			if flags.Changed("solver") {
				cfg.Solver = f.solver
			}
			if flags.Changed("negative") {
				cfg.Negative = f.negative
			}
			if flags.Changed("max-sweeps") {
				cfg.MaxSweeps = f.maxSweeps
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runProject(cmd, path, cfg, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVarP(&f.input, "input", "i", formatAuto, "input format: auto, csv, json")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatJSON, "output format: json, csv")
	cmd.Flags().IntVarP(&f.dims, "dims", "k", def.Dimensions, "target dimensions")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for the random fallback layout (0: clock)")
	cmd.Flags().StringVar(&f.solver, "solver", def.Solver, "eigensolver: lapack, jacobi")
	cmd.Flags().StringVar(&f.negative, "negative", def.Negative, "negative eigenvalue policy: clamp, fallback")
	cmd.Flags().IntVar(&f.maxSweeps, "max-sweeps", def.MaxSweeps, "jacobi sweep budget")

	return cmd
}

// runProject reads the matrix, embeds it and writes the coordinates.
func runProject(cmd *cobra.Command, path string, cfg config.Config, f projectFlags) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	var in io.Reader = cmd.InOrStdin()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open matrix: %w", err)
		}
		defer file.Close()
		in = file
	}
	br := bufio.NewReader(in)

	format, err := inputFormat(f.input, path, br)
	if err != nil {
		return err
	}
	d, err := readMatrix(br, format)
	if err != nil {
		return err
	}
	logger.Debug("matrix loaded", "items", len(d), "format", format, "solver", cfg.Solver)
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	opts := append(cfg.Options(), mds.WithLogger(logger))
	res, err := mds.Embed(d, opts...)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if !res.Fallback {
		logger.Debug("embedding", "eigenvalues", res.Eigenvalues, "explained", res.Explained)
	}

	if err := writeResult(cmd.OutOrStdout(), res, cfg.Dimensions, f.output); err != nil {
		return fmt.Errorf("write coordinates: %w", err)
	}
	prog.done(fmt.Sprintf("projected %d items", len(d)))

	return nil
}
