// Package refstore reads low-level reference records and resolves symbolic
// references down to direct ones.
package refstore

import (
	"context"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// Store gives read access to the reference records of a repository.
type Store interface {
	// ReadReference returns the record of the reference called name without
	// following symbolic references. Returns git.ErrReferenceNotFound if no
	// such reference exists.
	ReadReference(ctx context.Context, name string) (*git.Reference, error)

	// ListReferences returns all references whose name starts with prefix,
	// sorted by name.
	ListReferences(ctx context.Context, prefix string) ([]*git.Reference, error)
}
