package ref

import (
	"context"
	"errors"
	"strings"

	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

// Branch is a local or remote-tracking branch. Its target is a commit.
type Branch struct {
	*Wrapper[*object.Commit]
}

// NewBranch wraps record into a Branch.
func NewBranch(repo *repository.Repository, record *git.Reference) (*Branch, error) {
	w, err := New[*object.Commit](repo, record, CanonicalNameOf, ShortenByCategory)
	if err != nil {
		return nil, err
	}
	return &Branch{Wrapper: w}, nil
}

// Tip returns the commit the branch points at.
func (b *Branch) Tip(ctx context.Context) (*object.Commit, bool, error) {
	return b.TargetObject(ctx)
}

// IsRemote reports whether this is a remote-tracking branch.
func (b *Branch) IsRemote() bool {
	return CategoryOf(b.CanonicalName()) == CategoryRemoteBranch
}

// RemoteName returns the name of the remote a remote-tracking branch
// belongs to, or an empty string for local branches.
func (b *Branch) RemoteName() string {
	if !b.IsRemote() {
		return ""
	}

	name := strings.TrimPrefix(b.CanonicalName(), git.RemotesPrefix)
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}

// IsCurrentRepositoryHead reports whether HEAD points at this branch.
func (b *Branch) IsCurrentRepositoryHead(ctx context.Context) (bool, error) {
	if b.IsRemote() {
		return false, nil
	}

	head, err := b.Repository().ReadReference(ctx, git.HeadName)
	if err != nil {
		if errors.Is(err, git.ErrReferenceNotFound) {
			return false, nil
		}
		return false, err
	}

	return head.IsSymbolic() && head.SymbolicTarget() == b.CanonicalName(), nil
}
