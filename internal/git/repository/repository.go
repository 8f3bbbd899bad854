// Package repository ties a reference store and an object database together.
package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/catfile"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/refstore"
	gitreflog "gitlab.com/gitlab-org/gitref/internal/log"
)

// Repository gives read access to the references and objects of a Git
// repository. Values derived from a Repository, like reference wrappers,
// borrow it: they must not be used once the repository has been closed.
type Repository struct {
	refs           refstore.Store
	objects        catfile.InfoReader
	maxSymrefDepth int
	logger         *logrus.Entry
	closers        []io.Closer
}

// Option configures a Repository.
type Option func(*Repository)

// WithMaxSymrefDepth sets how many symbolic references are followed before
// a chain is considered broken.
func WithMaxSymrefDepth(depth int) Option {
	return func(r *Repository) { r.maxSymrefDepth = depth }
}

// WithLogger sets the logger used to report degraded lookups.
func WithLogger(logger *logrus.Entry) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithCloser registers c to be closed along with the repository.
func WithCloser(c io.Closer) Option {
	return func(r *Repository) { r.closers = append(r.closers, c) }
}

// New creates a Repository reading references from refs and objects from
// objects.
func New(refs refstore.Store, objects catfile.InfoReader, opts ...Option) (*Repository, error) {
	if refs == nil {
		return nil, fmt.Errorf("%w: nil reference store", git.ErrInvalidArg)
	}
	if objects == nil {
		return nil, fmt.Errorf("%w: nil object reader", git.ErrInvalidArg)
	}

	r := &Repository{
		refs:           refs,
		objects:        objects,
		maxSymrefDepth: refstore.DefaultMaxDepth,
		logger:         gitreflog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// References returns the reference store of the repository.
func (r *Repository) References() refstore.Store {
	return r.refs
}

// Objects returns the object header reader of the repository.
func (r *Repository) Objects() catfile.InfoReader {
	return r.objects
}

// Logger returns the logger of the repository.
func (r *Repository) Logger() *logrus.Entry {
	return r.logger
}

// ReadReference reads the record of the reference called name.
func (r *Repository) ReadReference(ctx context.Context, name string) (*git.Reference, error) {
	return r.refs.ReadReference(ctx, name)
}

// ListReferences returns the records of all references starting with prefix.
func (r *Repository) ListReferences(ctx context.Context, prefix string) ([]*git.Reference, error) {
	return r.refs.ListReferences(ctx, prefix)
}

// ResolveToDirect follows ref through symbolic references down to a direct
// one. See refstore.ResolveToDirect.
func (r *Repository) ResolveToDirect(ctx context.Context, ref *git.Reference) (*git.Reference, error) {
	return refstore.ResolveToDirect(ctx, r.refs, ref, r.maxSymrefDepth)
}

// Lookup returns the object identified by oid if it exists and is a T. The
// boolean is false when the object is missing or of another type. An error
// is only returned when the object database could not be queried.
func Lookup[T object.Object](ctx context.Context, r *Repository, oid git.ObjectID) (T, bool, error) {
	var zero T

	info, err := r.objects.Info(ctx, oid)
	if err != nil {
		if catfile.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("lookup %s: %w", oid, err)
	}

	obj, err := object.FromInfo(info)
	if err != nil {
		return zero, false, nil
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, false, nil
	}

	return typed, true, nil
}

// Close releases the resources held by the repository's backend.
func (r *Repository) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil

	return firstErr
}
