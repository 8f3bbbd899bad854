// Package object defines the typed Git objects references point at.
package object

import (
	"fmt"

	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/catfile"
)

// Object is an immutable object of the object database.
type Object interface {
	ObjectID() git.ObjectID
	Type() git.ObjectType
	Size() int64
}

type header struct {
	oid  git.ObjectID
	size int64
}

func (h header) ObjectID() git.ObjectID { return h.oid }
func (h header) Size() int64            { return h.size }

// Commit is a commit object.
type Commit struct{ header }

// Type returns git.ObjectCommit.
func (*Commit) Type() git.ObjectType { return git.ObjectCommit }

// Tree is a tree object.
type Tree struct{ header }

// Type returns git.ObjectTree.
func (*Tree) Type() git.ObjectType { return git.ObjectTree }

// Blob is a blob object.
type Blob struct{ header }

// Type returns git.ObjectBlob.
func (*Blob) Type() git.ObjectType { return git.ObjectBlob }

// Tag is an annotated tag object.
type Tag struct{ header }

// Type returns git.ObjectTag.
func (*Tag) Type() git.ObjectType { return git.ObjectTag }

// FromInfo builds the typed object described by info.
func FromInfo(info *catfile.ObjectInfo) (Object, error) {
	h := header{oid: info.Oid, size: info.Size}

	switch info.Type {
	case git.ObjectCommit:
		return &Commit{h}, nil
	case git.ObjectTree:
		return &Tree{h}, nil
	case git.ObjectBlob:
		return &Blob{h}, nil
	case git.ObjectTag:
		return &Tag{h}, nil
	}

	return nil, fmt.Errorf("%w: object %s has unsupported type %s", git.ErrInvalidArg, info.Oid, info.Type)
}
