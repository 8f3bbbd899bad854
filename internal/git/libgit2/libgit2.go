//go:build static && system_libgit2
// +build static,system_libgit2

// Package libgit2 reads references and objects through libgit2. Importing it
// registers the "libgit2" repository backend.
package libgit2

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	git2go "github.com/libgit2/git2go/v30"
	"gitlab.com/gitlab-org/gitref/internal/config"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/catfile"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

func init() {
	repository.RegisterBackend(config.BackendLibgit2, open)
}

var objectTypes = map[git2go.ObjectType]git.ObjectType{
	git2go.ObjectCommit: git.ObjectCommit,
	git2go.ObjectTree:   git.ObjectTree,
	git2go.ObjectBlob:   git.ObjectBlob,
	git2go.ObjectTag:    git.ObjectTag,
}

// Store serves reference records and object headers from a repository
// opened with libgit2. It implements both refstore.Store and
// catfile.InfoReader. Calls are serialized.
type Store struct {
	mu   sync.Mutex
	repo *git2go.Repository
	odb  *git2go.Odb
}

// Open opens the repository at path.
func Open(path string) (*Store, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	odb, err := repo.Odb()
	if err != nil {
		repo.Free()
		return nil, fmt.Errorf("open object database: %w", err)
	}

	return &Store{repo: repo, odb: odb}, nil
}

func open(ctx context.Context, cfg config.Cfg) (repository.Backend, error) {
	s, err := Open(cfg.GitDir())
	if err != nil {
		return repository.Backend{}, err
	}

	return repository.Backend{Refs: s, Objects: s, Closer: s}, nil
}

// ReadReference implements refstore.Store.
func (s *Store) ReadReference(ctx context.Context, name string) (*git.Reference, error) {
	if err := git.ValidateReferenceName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.repo.References.Lookup(name)
	if err != nil {
		if git2go.IsErrorCode(err, git2go.ErrNotFound) {
			return nil, git.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("lookup reference %q: %w", name, err)
	}
	defer ref.Free()

	return convertReference(ref)
}

// ListReferences implements refstore.Store.
func (s *Store) ListReferences(ctx context.Context, prefix string) ([]*git.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iter, err := s.repo.NewReferenceIterator()
	if err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}
	defer iter.Free()

	var refs []*git.Reference
	for {
		ref, err := iter.Next()
		if err != nil {
			if git2go.IsErrorCode(err, git2go.ErrIterOver) {
				break
			}
			return nil, fmt.Errorf("iterate references: %w", err)
		}

		if strings.HasPrefix(ref.Name(), prefix) {
			converted, err := convertReference(ref)
			if err != nil {
				ref.Free()
				return nil, err
			}
			refs = append(refs, converted)
		}
		ref.Free()
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name() < refs[j].Name() })
	return refs, nil
}

// Info implements catfile.InfoReader.
func (s *Store) Info(ctx context.Context, oid git.ObjectID) (*catfile.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := git2go.NewOid(oid.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", git.ErrInvalidArg, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size, objectType, err := s.odb.ReadHeader(id)
	if err != nil {
		if git2go.IsErrorCode(err, git2go.ErrNotFound) {
			return nil, catfile.NewNotFoundError(oid)
		}
		return nil, fmt.Errorf("read object header %s: %w", oid, err)
	}

	t, ok := objectTypes[objectType]
	if !ok {
		return nil, fmt.Errorf("object %s has unsupported type %s", oid, objectType)
	}

	return &catfile.ObjectInfo{Oid: oid, Type: t, Size: int64(size)}, nil
}

// Close frees the libgit2 handles.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil
	}

	s.odb.Free()
	s.repo.Free()
	s.odb, s.repo = nil, nil

	return nil
}

func convertReference(ref *git2go.Reference) (*git.Reference, error) {
	switch ref.Type() {
	case git2go.ReferenceSymbolic:
		return git.NewSymbolicReference(ref.Name(), ref.SymbolicTarget()), nil
	case git2go.ReferenceOid:
		oid, err := git.NewObjectIDFromHex(ref.Target().String())
		if err != nil {
			return nil, err
		}
		return git.NewReference(ref.Name(), oid), nil
	}

	return nil, fmt.Errorf("reference %q has unknown type %d", ref.Name(), ref.Type())
}
