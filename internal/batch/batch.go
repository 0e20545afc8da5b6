// Package batch applies the shape checker and normalizer to every post in a
// collection. Posts are independent, so they may be processed concurrently;
// results always come back in listing order.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kingrea/blog-tools/internal/logging"
	"github.com/kingrea/blog-tools/internal/shape"
)

// Collection is the storage the runner needs. *posts.Store satisfies it.
type Collection interface {
	List() ([]string, error)
	Read(name string) (string, error)
	Write(name, text string) error
	Path(name string) string
}

// Options tunes a batch run.
type Options struct {
	// Jobs bounds how many posts are processed at once. Values below 1 mean 1.
	Jobs int
	// DryRun computes normalization results without writing them back.
	DryRun bool
	Logger *logging.Logger
}

func (o Options) jobs() int {
	if o.Jobs < 1 {
		return 1
	}
	return o.Jobs
}

// LintResult is the check outcome for one post.
type LintResult struct {
	Name       string
	Path       string
	Violations []shape.Violation
}

// OK reports whether the post has no violations.
func (r LintResult) OK() bool {
	return len(r.Violations) == 0
}

// LintReport aggregates lint results.
type LintReport struct {
	Results []LintResult
}

// Failed reports whether any post has at least one violation.
func (r LintReport) Failed() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return true
		}
	}
	return false
}

// FailedCount returns how many posts have violations.
func (r LintReport) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// NormalizeResult is the normalize outcome for one post.
type NormalizeResult struct {
	Name string
	Path string
	shape.Result
	// Written is false for unchanged posts and for dry runs.
	Written bool
}

// NormalizeReport aggregates normalize results.
type NormalizeReport struct {
	Results []NormalizeResult
	DryRun  bool
}

// ChangedCount returns how many posts needed edits.
func (r NormalizeReport) ChangedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Changed {
			n++
		}
	}
	return n
}

// Lint checks every post in the collection. It never writes.
func Lint(ctx context.Context, c Collection, opts Options) (LintReport, error) {
	names, err := c.List()
	if err != nil {
		return LintReport{}, err
	}
	results := make([]LintResult, len(names))
	err = forEach(ctx, names, opts.jobs(), func(i int, name string) error {
		text, err := c.Read(name)
		if err != nil {
			return err
		}
		results[i] = LintResult{
			Name:       name,
			Path:       c.Path(name),
			Violations: shape.Check(text),
		}
		opts.Logger.Debug("checked post", "post", name, "violations", len(results[i].Violations))
		return nil
	})
	if err != nil {
		return LintReport{}, err
	}
	return LintReport{Results: results}, nil
}

// Normalize brings every post into canonical shape. Only posts that changed
// are written back, and nothing is written on a dry run.
func Normalize(ctx context.Context, c Collection, opts Options) (NormalizeReport, error) {
	names, err := c.List()
	if err != nil {
		return NormalizeReport{}, err
	}
	results := make([]NormalizeResult, len(names))
	err = forEach(ctx, names, opts.jobs(), func(i int, name string) error {
		text, err := c.Read(name)
		if err != nil {
			return err
		}
		res := NormalizeResult{Name: name, Path: c.Path(name), Result: shape.Normalize(text)}
		if res.MissingHeading {
			opts.Logger.Warn("no H1 found, skipping author line insertion", "post", res.Path)
		}
		if res.Changed && !opts.DryRun {
			if err := c.Write(name, res.Text); err != nil {
				return err
			}
			res.Written = true
		}
		opts.Logger.Debug("normalized post", "post", name, "changed", res.Changed, "written", res.Written)
		results[i] = res
		return nil
	})
	if err != nil {
		return NormalizeReport{}, err
	}
	return NormalizeReport{Results: results, DryRun: opts.DryRun}, nil
}

func forEach(ctx context.Context, names []string, jobs int, fn func(int, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(i, name); err != nil {
				return fmt.Errorf("batch: %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
