package refstore

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// DefaultMaxDepth is the number of symbolic references ResolveToDirect
// follows before it gives up on a chain.
const DefaultMaxDepth = 10

// ResolveToDirect follows the chain of symbolic references starting at ref
// until it reaches a direct reference, which it returns. A chain that names a
// missing or malformed reference, loops back on itself or is longer than
// maxDepth resolves to nil without an error. Errors are returned for a nil
// ref and for failures of the store itself.
func ResolveToDirect(ctx context.Context, store Store, ref *git.Reference, maxDepth int) (*git.Reference, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: nil reference", git.ErrInvalidArg)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seen := map[string]struct{}{ref.Name(): {}}
	for depth := 0; ref.IsSymbolic(); depth++ {
		if depth >= maxDepth {
			return nil, nil
		}

		next := ref.SymbolicTarget()
		if _, ok := seen[next]; ok {
			return nil, nil
		}
		seen[next] = struct{}{}

		var err error
		ref, err = store.ReadReference(ctx, next)
		switch {
		case errors.Is(err, git.ErrReferenceNotFound), errors.Is(err, git.ErrInvalidArg):
			return nil, nil
		case err != nil:
			return nil, fmt.Errorf("resolve %q: %w", next, err)
		}
	}

	return ref, nil
}
