// Package catfile reads object headers from a Git object database.
package catfile

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// ObjectInfo represents a header returned by `git cat-file --batch-check`
type ObjectInfo struct {
	Oid  git.ObjectID
	Type git.ObjectType
	Size int64
}

// NotFoundError is returned when requesting an object that does not exist.
type NotFoundError struct{ error }

// IsNotFound tests whether err has type NotFoundError.
func IsNotFound(err error) bool {
	var notFound NotFoundError
	return errors.As(err, &notFound)
}

// NewNotFoundError returns a NotFoundError for oid.
func NewNotFoundError(oid git.ObjectID) error {
	return NotFoundError{fmt.Errorf("object %s not found", oid)}
}

// IsBlob returns true if object type is "blob"
func (o *ObjectInfo) IsBlob() bool {
	return o.Type == git.ObjectBlob
}

// ParseObjectInfo reads from a reader and parses the data into an ObjectInfo struct
func ParseObjectInfo(stdout *bufio.Reader) (*ObjectInfo, error) {
	infoLine, err := stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read info line: %w", err)
	}

	infoLine = strings.TrimSuffix(infoLine, "\n")
	if strings.HasSuffix(infoLine, " missing") {
		return nil, NewNotFoundError(git.ObjectID(strings.TrimSuffix(infoLine, " missing")))
	}

	info := strings.Split(infoLine, " ")
	if len(info) != 3 {
		return nil, fmt.Errorf("invalid info line: %q", infoLine)
	}

	oid, err := git.NewObjectIDFromHex(info[0])
	if err != nil {
		return nil, fmt.Errorf("parse object ID: %w", err)
	}

	objectType, err := git.ParseObjectType(info[1])
	if err != nil {
		return nil, fmt.Errorf("parse object type: %w", err)
	}

	objectSize, err := strconv.ParseInt(info[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse object size: %w", err)
	}

	return &ObjectInfo{
		Oid:  oid,
		Type: objectType,
		Size: objectSize,
	}, nil
}
