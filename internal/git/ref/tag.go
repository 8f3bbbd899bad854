package ref

import (
	"context"

	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

// Tag is a reference under refs/tags/. It may point at an object of any type.
type Tag struct {
	*Wrapper[object.Object]
}

// NewTag wraps record into a Tag.
func NewTag(repo *repository.Repository, record *git.Reference) (*Tag, error) {
	w, err := New[object.Object](repo, record, CanonicalNameWithPrefix(git.TagsPrefix), ShortenerFor(CategoryTag))
	if err != nil {
		return nil, err
	}
	return &Tag{Wrapper: w}, nil
}

// Target returns the object the tag points at: the tag object for annotated
// tags, the tagged object itself for lightweight ones.
func (t *Tag) Target(ctx context.Context) (object.Object, bool, error) {
	return t.TargetObject(ctx)
}

// IsAnnotated reports whether the tag points at an annotated tag object.
func (t *Tag) IsAnnotated(ctx context.Context) (bool, error) {
	target, ok, err := t.TargetObject(ctx)
	if err != nil || !ok {
		return false, err
	}
	return target.Type() == git.ObjectTag, nil
}

