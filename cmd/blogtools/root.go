package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/blog-tools/internal/batch"
	"github.com/kingrea/blog-tools/internal/config"
	"github.com/kingrea/blog-tools/internal/logging"
	"github.com/kingrea/blog-tools/internal/posts"
	"github.com/kingrea/blog-tools/internal/report"
)

type rootFlags struct {
	project  string
	config   string
	dir      string
	jobs     int
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "blogtools",
		Short:         "Lint and normalize blog posts",
		Long:          "Checks that every post carries the author byline under its first H1 and the standard footer, and can fix posts that don't.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.project, "project", "", "project root (default: current directory)")
	pf.StringVar(&flags.config, "config", "", "config file (default: <project>/"+config.ProjectFile+")")
	pf.StringVar(&flags.dir, "dir", "", "posts directory, relative to the project root")
	pf.IntVarP(&flags.jobs, "jobs", "j", 0, "posts processed concurrently (default from config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (default from config)")

	root.AddCommand(
		newLintCmd(flags),
		newNormalizeCmd(flags),
		newInitCmd(flags),
	)
	return root
}

// app bundles what a batch command needs.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	store   *posts.Store
	printer *report.Printer
}

func (a *app) Close() error {
	return a.logger.Close()
}

func (a *app) options() batch.Options {
	return batch.Options{Jobs: a.cfg.Project.Jobs, Logger: a.logger}
}

func (f *rootFlags) projectDir() (string, error) {
	if f.project != "" {
		return f.project, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

func (f *rootFlags) load(cmd *cobra.Command) (*app, error) {
	projectDir, err := f.projectDir()
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}
	cfg, err := config.Load(projectDir, f.config)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}
	cfg.SetPostsDir(f.dir)
	if f.jobs > 0 {
		cfg.Project.Jobs = f.jobs
	}
	if f.logLevel != "" {
		cfg.Project.Log.Level = f.logLevel
	}

	logOpts := logging.Options{Level: cfg.Project.Log.Level, Output: cmd.ErrOrStderr()}
	if cfg.Project.Log.File {
		logOpts.FileDir = cfg.LogsDir()
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, &exitError{code: exitFailure, err: err}
	}

	store, err := posts.Open(cfg.PostsDir(),
		posts.WithExtension(cfg.Project.Posts.Extension),
		posts.WithIndex(cfg.Project.Posts.Index),
		posts.WithExclude(cfg.Project.Posts.Exclude...),
	)
	if err != nil {
		_ = logger.Close()
		if errors.Is(err, posts.ErrCollectionNotFound) {
			return nil, &exitError{code: exitCollectionNotFound, err: fmt.Errorf("posts directory not found: %s", cfg.PostsDir())}
		}
		return nil, &exitError{code: exitFailure, err: err}
	}
	logger.Debug("loaded config", "path", cfg.Path, "posts", store.Dir(), "jobs", cfg.Project.Jobs)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		printer: report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}, nil
}
