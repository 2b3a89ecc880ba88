// Package batch converts many workbooks concurrently.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job describes a batch of conversions.
type Job struct {
	// Inputs are workbook paths.
	Inputs []string
	// OutDir receives <basename>.csv for every input. Empty writes each CSV
	// next to its input.
	OutDir string
	// Jobs caps the number of conversions in flight. Values below 1 mean 1.
	Jobs int
}

// Result reports one converted file.
type Result struct {
	Input  string
	Output string
	Bytes  int
}

// OutputPath returns the CSV path for input.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

// Run converts every input of job. Results are in input order. The first
// failure stops scheduling of remaining inputs and is returned; results of
// conversions that never ran are left zero.
func Run(ctx context.Context, job Job, opts xlsxcsv.Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	outputs := make(map[string]string, len(job.Inputs))
	for _, in := range job.Inputs {
		out := OutputPath(in, job.OutDir)
		if prev, ok := outputs[out]; ok {
			return nil, fmt.Errorf("inputs %s and %s both map to %s", prev, in, out)
		}
		outputs[out] = in
	}

	if job.OutDir != "" {
		if err := os.MkdirAll(job.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	limit := job.Jobs
	if limit < 1 {
		limit = 1
	}
	logger.Info("starting batch", zap.Int("files", len(job.Inputs)), zap.Int("jobs", limit))

	results := make([]Result, len(job.Inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range job.Inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := OutputPath(in, job.OutDir)
			data, err := xlsxcsv.ConvertFile(in, opts)
			if err != nil {
				return fmt.Errorf("convert %s: %w", in, err)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			logger.Debug("converted file",
				zap.String("input", in),
				zap.String("output", out),
				zap.Int("bytes", len(data)))
			results[i] = Result{Input: in, Output: out, Bytes: len(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
