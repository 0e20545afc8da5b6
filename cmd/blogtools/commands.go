package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/blog-tools/internal/batch"
	"github.com/kingrea/blog-tools/internal/config"
	"github.com/kingrea/blog-tools/internal/posts"
)

func newLintCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report posts missing the author line or footer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := batch.Lint(cmd.Context(), a.store, a.options())
			if err != nil {
				return batchError(err)
			}
			a.printer.Lint(rep)
			if rep.Failed() {
				a.logger.Debug("lint failed", "failed", rep.FailedCount(), "total", len(rep.Results))
				return &exitError{code: exitViolations}
			}
			return nil
		},
	}
}

func newNormalizeCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Insert the author line and append the footer where missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			opts := a.options()
			opts.DryRun = dryRun
			rep, err := batch.Normalize(cmd.Context(), a.store, opts)
			if err != nil {
				return batchError(err)
			}
			a.printer.Normalize(rep)
			a.logger.Debug("normalize finished", "changed", rep.ChangedCount(), "total", len(rep.Results), "dry_run", dryRun)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	return cmd
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ProjectFile + " in the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir, err := flags.projectDir()
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			path, created, err := config.WriteDefault(projectDir)
			if err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}

func batchError(err error) error {
	if errors.Is(err, posts.ErrCollectionNotFound) {
		return &exitError{code: exitCollectionNotFound, err: err}
	}
	return &exitError{code: exitFailure, err: err}
}
