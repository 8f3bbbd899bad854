// Package ref wraps low-level reference records into branches, tags and
// other named references whose target object is resolved on first use.
package ref

import (
	"context"
	"fmt"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

// NameSelector computes the canonical name of a reference from its record.
type NameSelector func(record *git.Reference) (string, error)

// Shortener maps a canonical reference name to its friendly name. It must be
// a pure function of its input.
type Shortener func(canonicalName string) string

// Wrapper is a read-only view of a reference record. Its canonical name is
// computed when the Wrapper is created; the object the reference points at
// is resolved on the first call to TargetObject and remembered from then on,
// even if the reference is updated afterwards.
//
// A Wrapper borrows its repository and must not outlive it.
type Wrapper[T object.Object] struct {
	repo          *repository.Repository
	record        *git.Reference
	canonicalName string
	shorten       Shortener

	once     sync.Once
	resolved resolution[T]
}

type resolution[T object.Object] struct {
	target T
	found  bool
	err    error
}

// New creates a Wrapper around record. The record itself is not validated
// until the target object is resolved, so a nil record is accepted as long
// as selectName accepts it. A nil shorten keeps names unchanged.
func New[T object.Object](repo *repository.Repository, record *git.Reference, selectName NameSelector, shorten Shortener) (*Wrapper[T], error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: nil repository", git.ErrInvalidArg)
	}
	if selectName == nil {
		return nil, fmt.Errorf("%w: nil name selector", git.ErrInvalidArg)
	}
	if shorten == nil {
		shorten = Identity
	}

	canonicalName, err := selectName(record)
	if err != nil {
		return nil, fmt.Errorf("select canonical name: %w", err)
	}

	return &Wrapper[T]{
		repo:          repo,
		record:        record,
		canonicalName: canonicalName,
		shorten:       shorten,
	}, nil
}

// CanonicalName returns the full name of the reference, e.g. refs/heads/master.
func (w *Wrapper[T]) CanonicalName() string {
	return w.canonicalName
}

// Name returns the friendly name of the reference, e.g. master.
func (w *Wrapper[T]) Name() string {
	return w.shorten(w.canonicalName)
}

func (w *Wrapper[T]) String() string {
	return w.canonicalName
}

// Repository returns the repository the reference belongs to.
func (w *Wrapper[T]) Repository() *repository.Repository {
	return w.repo
}

// TargetObject returns the object the reference points at. The boolean is
// false if the reference is dangling, points at a missing object or at an
// object that is not a T; none of these are errors. An error is only
// returned if the wrapper was built from a nil record.
//
// Resolution runs once. Every call, including concurrent ones, observes the
// outcome of that single run. The context of the first call is the one used
// for resolution: if it is already cancelled, the lookup fails, and the target
// is remembered as absent for the lifetime of the Wrapper.
func (w *Wrapper[T]) TargetObject(ctx context.Context) (T, bool, error) {
	w.once.Do(func() {
		w.resolved = w.resolve(ctx)
	})

	return w.resolved.target, w.resolved.found, w.resolved.err
}

// Resolve resolves the target object and returns only the error. It lets
// wrappers of different object types be preloaded together.
func (w *Wrapper[T]) Resolve(ctx context.Context) error {
	_, _, err := w.TargetObject(ctx)
	return err
}

func (w *Wrapper[T]) resolve(ctx context.Context) resolution[T] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ref.TargetObject")
	span.SetTag("reference", w.canonicalName)
	defer span.Finish()

	if w.record == nil {
		referenceResolutions.WithLabelValues(outcomeInvalid).Inc()
		return resolution[T]{err: fmt.Errorf("%w: nil reference", git.ErrInvalidArg)}
	}

	logger := w.repo.Logger().WithField("reference", w.canonicalName)

	direct, err := w.repo.ResolveToDirect(ctx, w.record)
	if err != nil {
		logger.WithError(err).Warn("resolving symbolic reference failed")
		return w.absent(span)
	}
	if direct == nil {
		logger.Debug("reference chain is broken")
		return w.absent(span)
	}

	oid, ok := direct.Target()
	if !ok {
		return w.absent(span)
	}

	target, found, err := repository.Lookup[T](ctx, w.repo, oid)
	if err != nil {
		logger.WithFields(logrus.Fields{"oid": oid}).WithError(err).Warn("looking up target object failed")
		return w.absent(span)
	}
	if !found {
		return w.absent(span)
	}

	span.SetTag("oid", oid.String())
	referenceResolutions.WithLabelValues(outcomeFound).Inc()

	return resolution[T]{target: target, found: true}
}

func (w *Wrapper[T]) absent(span opentracing.Span) resolution[T] {
	span.SetTag("absent", true)
	referenceResolutions.WithLabelValues(outcomeAbsent).Inc()
	return resolution[T]{}
}
