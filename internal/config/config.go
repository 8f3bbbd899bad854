package config

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	log "github.com/sirupsen/logrus"
)

const (
	// BackendGit reads references from the files of the Git directory and
	// objects through git-cat-file(1).
	BackendGit = "git"
	// BackendLibgit2 reads references and objects through libgit2.
	BackendLibgit2 = "libgit2"

	envPrefix = "gitref"
)

// Cfg is a container for all config derived from config.toml.
type Cfg struct {
	Repository           Repository `toml:"repository" envconfig:"repository"`
	Git                  Git        `toml:"git" envconfig:"git"`
	Refs                 Refs       `toml:"refs" envconfig:"refs"`
	Logging              Logging    `toml:"logging" envconfig:"logging"`
	PrometheusListenAddr string     `toml:"prometheus_listen_addr" split_words:"true"`
}

// Repository selects the repository to read.
type Repository struct {
	Path string `toml:"path"`
}

// Git contains the settings for accessing the object database
type Git struct {
	BinPath          string `toml:"bin_path" split_words:"true"`
	Backend          string `toml:"backend"`
	CatfileCacheSize int    `toml:"catfile_cache_size" split_words:"true"`
}

// Refs contains the settings for reference resolution
type Refs struct {
	// MaxSymrefDepth is the number of symbolic references followed before a
	// chain is considered broken. Zero selects the default.
	MaxSymrefDepth int `toml:"max_symref_depth" split_words:"true"`
}

// Logging contains the logging configuration
type Logging struct {
	Format            string `toml:"format"`
	Level             string `toml:"level"`
	Dir               string `toml:"dir"`
	SentryDSN         string `toml:"sentry_dsn" split_words:"true"`
	SentryEnvironment string `toml:"sentry_environment" split_words:"true"`
}

// Load initializes a Cfg from file and the environment.
// Environment variables take precedence over the file.
func Load(file io.Reader) (Cfg, error) {
	var cfg Cfg

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Cfg{}, fmt.Errorf("load toml: %v", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Cfg{}, fmt.Errorf("envconfig: %v", err)
	}

	cfg.setDefaults()

	if cfg.Repository.Path != "" {
		cfg.Repository.Path = filepath.Clean(cfg.Repository.Path)
	}

	return cfg, nil
}

// FromFile loads the configuration stored at path.
func FromFile(path string) (Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return Cfg{}, err
	}
	defer f.Close()

	return Load(f)
}

func (cfg *Cfg) setDefaults() {
	if cfg.Git.Backend == "" {
		cfg.Git.Backend = BackendGit
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks the Cfg for sanity.
func (cfg *Cfg) Validate() error {
	for _, run := range []func() error{
		cfg.validateRepository,
		cfg.validateBackend,
		cfg.validateRefs,
		cfg.validateLogging,
		cfg.SetGitPath,
	} {
		if err := run(); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Cfg) validateRepository() error {
	if cfg.Repository.Path == "" {
		return fmt.Errorf("repository.path is not set")
	}

	if err := validateIsDirectory(cfg.Repository.Path, "repository.path"); err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(cfg.GitDir(), "HEAD")); err != nil {
		return fmt.Errorf("not a git repository: %q", cfg.Repository.Path)
	}

	return nil
}

func (cfg *Cfg) validateBackend() error {
	switch cfg.Git.Backend {
	case BackendGit, BackendLibgit2:
		return nil
	}

	return fmt.Errorf("unsupported git.backend %q", cfg.Git.Backend)
}

func (cfg *Cfg) validateRefs() error {
	if cfg.Refs.MaxSymrefDepth < 0 {
		return fmt.Errorf("refs.max_symref_depth must not be negative: %d", cfg.Refs.MaxSymrefDepth)
	}

	if cfg.Git.CatfileCacheSize < 0 {
		return fmt.Errorf("git.catfile_cache_size must not be negative: %d", cfg.Git.CatfileCacheSize)
	}

	return nil
}

func (cfg *Cfg) validateLogging() error {
	if cfg.Logging.Dir == "" {
		return nil
	}

	return validateIsDirectory(cfg.Logging.Dir, "logging.dir")
}

// GitDir returns the Git directory of the configured repository: the
// repository path itself for bare repositories, its .git directory otherwise.
func (cfg *Cfg) GitDir() string {
	dotGit := filepath.Join(cfg.Repository.Path, ".git")
	if s, err := os.Stat(dotGit); err == nil && s.IsDir() {
		return dotGit
	}

	return cfg.Repository.Path
}

// SetGitPath populates Git.BinPath with the path to the `git`
// executable. It warns if no path was specified in the configuration.
func (cfg *Cfg) SetGitPath() error {
	if cfg.Git.BinPath != "" {
		return nil
	}

	resolvedPath, err := exec.LookPath("git")
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"resolvedPath": resolvedPath,
	}).Warn("git path not configured. Using default path resolution")

	cfg.Git.BinPath = resolvedPath

	return nil
}

func validateIsDirectory(path, name string) error {
	s, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !s.IsDir() {
		return fmt.Errorf("%s: not a directory: %q", name, path)
	}

	log.WithField("dir", path).
		Debugf("%s set", name)

	return nil
}
