package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/gitlab-org/gitref/internal/config"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
	"gitlab.com/gitlab-org/gitref/internal/log"
	"gitlab.com/gitlab-org/gitref/internal/version"
	"gitlab.com/gitlab-org/labkit/monitoring"
	"gitlab.com/gitlab-org/labkit/tracing"
)

const defaultParallelism = 4

type options struct {
	configPath     string
	repositoryPath string
	parallelism    int
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           progname,
		Short:         "Inspect the references of a Git repository",
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newBranchesCommand(opts),
		newTagsCommand(opts),
		newShowCommand(opts),
	)

	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "", "Location for the config.toml")
	flags.StringVarP(&opts.repositoryPath, "repository", "r", "", "Repository to inspect, overrides repository.path")
	flags.IntVar(&opts.parallelism, "parallelism", defaultParallelism, "Number of references resolved concurrently")
}

func loadConfig(opts *options) (config.Cfg, error) {
	var (
		cfg config.Cfg
		err error
	)

	if opts.configPath != "" {
		cfg, err = config.FromFile(opts.configPath)
	} else {
		cfg, err = config.Load(strings.NewReader(""))
	}
	if err != nil {
		return cfg, fmt.Errorf("error reading config: %w", err)
	}

	if opts.repositoryPath != "" {
		cfg.Repository.Path = opts.repositoryPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// withRepository sets up logging, tracing and monitoring, opens the
// configured repository and hands it to fn.
func withRepository(ctx context.Context, opts *options, fn func(context.Context, *repository.Repository) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log.Configure(cfg.Logging.Format, cfg.Logging.Level)
	if cfg.Logging.Dir != "" {
		logFile, err := log.RedirectToDir(cfg.Logging.Dir)
		if err != nil {
			return err
		}
		defer logFile.Close()
	}

	logger := log.Default().WithFields(logrus.Fields{
		"run_id":  uuid.New().String(),
		"backend": cfg.Git.Backend,
	})

	closer := tracing.Initialize(tracing.WithServiceName(progname))
	defer closer.Close()

	if cfg.PrometheusListenAddr != "" {
		startMonitoring(logger, cfg.PrometheusListenAddr)
	}

	config.ConfigureSentry(version.GetVersion(), cfg.Logging)

	repo, err := repository.Open(ctx, cfg, repository.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.WithError(err).Warn("closing repository")
		}
	}()

	logger.WithField("repository", cfg.Repository.Path).Debug("repository opened")

	return fn(ctx, repo)
}

func startMonitoring(logger *logrus.Entry, addr string) {
	logger.WithField("address", addr).Info("Starting prometheus listener")

	go func() {
		if err := monitoring.Serve(
			monitoring.WithListenerAddress(addr),
			monitoring.WithBuildInformation(version.GetVersion(), version.GetBuildTime())); err != nil {
			logger.WithError(err).Errorf("Unable to start prometheus listener: %v", addr)
		}
	}()
}

func resolverParallelism(opts *options) int {
	if opts.parallelism <= 0 {
		return defaultParallelism
	}
	return opts.parallelism
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
