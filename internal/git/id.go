package git

import (
	"fmt"
	"regexp"
)

var objectIDRegex = regexp.MustCompile(`\A[0-9a-f]{40}\z`)

// ObjectID is the hex representation of a Git object hash.
type ObjectID string

// NewObjectIDFromHex validates hex and returns it as an ObjectID.
func NewObjectIDFromHex(hex string) (ObjectID, error) {
	if !objectIDRegex.MatchString(hex) {
		return "", fmt.Errorf("%w: invalid object ID %q", ErrInvalidArg, hex)
	}

	return ObjectID(hex), nil
}

// String returns the hex representation of the ObjectID.
func (oid ObjectID) String() string {
	return string(oid)
}

// IsZero reports whether oid is the null object ID Git uses for absent objects.
func (oid ObjectID) IsZero() bool {
	return oid == "" || oid == NullSHA
}

// ValidateCommitID checks if id could be a Git commit ID, syntactically.
func ValidateCommitID(id string) error {
	if objectIDRegex.MatchString(id) {
		return nil
	}

	return fmt.Errorf("invalid commit ID: %q", id)
}
