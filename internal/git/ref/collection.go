package ref

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// NewReference wraps a reference of any category. Its name is shortened
// according to the category the canonical name belongs to.
func NewReference(repo *repository.Repository, record *git.Reference) (*Wrapper[object.Object], error) {
	return New[object.Object](repo, record, CanonicalNameOf, ShortenByCategory)
}

// Branches returns the local branches followed by the remote-tracking ones.
func Branches(ctx context.Context, repo *repository.Repository) ([]*Branch, error) {
	var branches []*Branch

	for _, prefix := range []string{git.HeadsPrefix, git.RemotesPrefix} {
		records, err := repo.ListReferences(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}

		for _, record := range records {
			branch, err := NewBranch(repo, record)
			if err != nil {
				return nil, err
			}
			branches = append(branches, branch)
		}
	}

	return branches, nil
}

// Tags returns all tags.
func Tags(ctx context.Context, repo *repository.Repository) ([]*Tag, error) {
	records, err := repo.ListReferences(ctx, git.TagsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]*Tag, 0, len(records))
	for _, record := range records {
		tag, err := NewTag(repo, record)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// FindBranch looks up a local branch. name may be fully qualified
// (refs/heads/master), start with heads/ or be the bare branch name. Returns
// git.ErrReferenceNotFound if there is no such branch.
func FindBranch(ctx context.Context, repo *repository.Repository, name string) (*Branch, error) {
	if !strings.HasPrefix(name, git.HeadsPrefix) {
		name = git.HeadsPrefix + strings.TrimPrefix(name, "heads/")
	}

	record, err := repo.ReadReference(ctx, name)
	if err != nil {
		return nil, err
	}

	return NewBranch(repo, record)
}

// IsValid checks if the reference called name exists and points at an
// existing object.
func IsValid(ctx context.Context, repo *repository.Repository, name string) bool {
	if name == "" {
		return false
	}

	record, err := repo.ReadReference(ctx, name)
	if err != nil {
		return false
	}

	w, err := NewReference(repo, record)
	if err != nil {
		return false
	}

	_, ok, err := w.TargetObject(ctx)
	return err == nil && ok
}

// Resolver is implemented by every Wrapper.
type Resolver interface {
	Resolve(ctx context.Context) error
}

// Preload resolves the targets of resolvers with at most parallelism
// resolutions in flight. It returns the first error any of them reported.
func Preload(ctx context.Context, parallelism int, resolvers ...Resolver) error {
	if parallelism <= 0 {
		return fmt.Errorf("%w: parallelism must be positive, got %d", git.ErrInvalidArg, parallelism)
	}

	sem := semaphore.NewWeighted(int64(parallelism))
	g, groupCtx := errgroup.WithContext(ctx)

	// Outcomes are memoized, resolve with the caller's ctx.
	var acquireErr error
	for _, r := range resolvers {
		r := r

		if err := sem.Acquire(groupCtx, 1); err != nil {
			acquireErr = err
			break
		}

		g.Go(func() error {
			defer sem.Release(1)
			return r.Resolve(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return acquireErr
}
