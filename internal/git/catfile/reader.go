package catfile

import (
	"context"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// InfoReader looks up object headers by object ID.
type InfoReader interface {
	// Info returns the header of the object identified by oid. If the object
	// does not exist, the returned error satisfies IsNotFound.
	Info(ctx context.Context, oid git.ObjectID) (*ObjectInfo, error)
}
