package repository

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"gitlab.com/gitlab-org/gitref/internal/config"
	"gitlab.com/gitlab-org/gitref/internal/git/catfile"
	"gitlab.com/gitlab-org/gitref/internal/git/refstore"
)

// Backend provides the stores of a repository. Closer, if not nil, is
// closed along with the repository.
type Backend struct {
	Refs    refstore.Store
	Objects catfile.InfoReader
	Closer  io.Closer
}

// Opener opens the backend for the repository described by cfg.
type Opener func(ctx context.Context, cfg config.Cfg) (Backend, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]Opener{
		config.BackendGit: openGitBackend,
	}
)

// RegisterBackend makes the backend called name available to Open.
func RegisterBackend(name string, opener Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = opener
}

// Backends returns the names of the registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Open opens the repository described by cfg with the configured backend.
// The object reader is wrapped into a catfile.Cache if a cache size is set.
func Open(ctx context.Context, cfg config.Cfg, opts ...Option) (*Repository, error) {
	backendsMu.RLock()
	opener, ok := backends[cfg.Git.Backend]
	backendsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("backend %q is not available in this build", cfg.Git.Backend)
	}

	backend, err := opener(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Git.Backend, err)
	}

	objects := backend.Objects
	if cfg.Git.CatfileCacheSize > 0 {
		cache, err := catfile.NewCache(objects, cfg.Git.CatfileCacheSize)
		if err != nil {
			if backend.Closer != nil {
				backend.Closer.Close()
			}
			return nil, err
		}
		objects = cache
	}

	repoOpts := []Option{}
	if cfg.Refs.MaxSymrefDepth > 0 {
		repoOpts = append(repoOpts, WithMaxSymrefDepth(cfg.Refs.MaxSymrefDepth))
	}
	if backend.Closer != nil {
		repoOpts = append(repoOpts, WithCloser(backend.Closer))
	}

	return New(backend.Refs, objects, append(repoOpts, opts...)...)
}

func openGitBackend(ctx context.Context, cfg config.Cfg) (Backend, error) {
	gitDir := cfg.GitDir()

	gitBin := cfg.Git.BinPath
	if gitBin == "" {
		gitBin = "git"
	}

	bc, err := catfile.NewBatchCheck(ctx, gitBin, gitDir)
	if err != nil {
		return Backend{}, err
	}

	return Backend{
		Refs:    refstore.NewFileStore(gitDir),
		Objects: bc,
		Closer:  bc,
	}, nil
}
