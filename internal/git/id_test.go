package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewObjectIDFromHex(t *testing.T) {
	oid, err := NewObjectIDFromHex("1e292f8fedd741b75372e19097c76d327140c312")
	require.NoError(t, err)
	require.Equal(t, "1e292f8fedd741b75372e19097c76d327140c312", oid.String())
	require.False(t, oid.IsZero())

	for _, invalid := range []string{"", "1e292f8", "1E292F8FEDD741B75372E19097C76D327140C312", "1e292f8fedd741b75372e19097c76d327140c312\n"} {
		_, err := NewObjectIDFromHex(invalid)
		require.True(t, errors.Is(err, ErrInvalidArg), "%q", invalid)
	}

	require.True(t, NullSHA.IsZero())
	require.True(t, ObjectID("").IsZero())
}

func TestValidateCommitID(t *testing.T) {
	require.NoError(t, ValidateCommitID(EmptyTreeID.String()))
	require.Error(t, ValidateCommitID("master"))
}

func TestParseObjectType(t *testing.T) {
	for _, objectType := range []ObjectType{ObjectCommit, ObjectTree, ObjectBlob, ObjectTag} {
		parsed, err := ParseObjectType(objectType.String())
		require.NoError(t, err)
		require.Equal(t, objectType, parsed)
	}

	_, err := ParseObjectType("any")
	require.True(t, errors.Is(err, ErrInvalidArg))

	require.Equal(t, "ObjectType(42)", ObjectType(42).String())
}
