package catfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/testhelper"
)

func TestBatchCheckInfo(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repoPath, cleanup := testhelper.InitBareRepo(t)
	defer cleanup()

	commitID := testhelper.CreateCommit(t, repoPath, "master", nil)
	blobID := testhelper.WriteBlob(t, repoPath, []byte("hello\n"))

	bc, err := NewBatchCheck(ctx, "git", repoPath)
	require.NoError(t, err)
	defer bc.Close()

	info, err := bc.Info(ctx, git.ObjectID(commitID))
	require.NoError(t, err)
	require.Equal(t, git.ObjectID(commitID), info.Oid)
	require.Equal(t, git.ObjectCommit, info.Type)

	info, err = bc.Info(ctx, git.ObjectID(blobID))
	require.NoError(t, err)
	require.Equal(t, git.ObjectBlob, info.Type)
	require.Equal(t, int64(6), info.Size)

	_, err = bc.Info(ctx, "cfe32cf61b73a0d5e9f13e774abde7ff789b1660")
	require.True(t, IsNotFound(err))

	// the process must still be usable after a miss
	info, err = bc.Info(ctx, git.ObjectID(commitID))
	require.NoError(t, err)
	require.Equal(t, git.ObjectCommit, info.Type)
}

func TestBatchCheckClosedByContext(t *testing.T) {
	ctx, cancel := testhelper.Context()

	repoPath, cleanup := testhelper.InitBareRepo(t)
	defer cleanup()

	bc, err := NewBatchCheck(ctx, "git", repoPath)
	require.NoError(t, err)

	cancel()

	_, err = bc.Info(ctx, git.EmptyTreeID)
	require.Error(t, err)
}

func TestBatchCheckRejectsMalformedObjectIDs(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repoPath, cleanup := testhelper.InitBareRepo(t)
	defer cleanup()

	blobID := git.ObjectID(testhelper.WriteBlob(t, repoPath, []byte("hello\n")))

	bc, err := NewBatchCheck(ctx, "git", repoPath)
	require.NoError(t, err)
	defer bc.Close()

	for _, oid := range []git.ObjectID{"foo\nbar", "", "HEAD", blobID + "\n" + blobID} {
		_, err := bc.Info(ctx, oid)
		require.True(t, errors.Is(err, git.ErrInvalidArg), "oid %q", oid)
	}

	info, err := bc.Info(ctx, blobID)
	require.NoError(t, err)
	require.Equal(t, &ObjectInfo{Oid: blobID, Type: git.ObjectBlob, Size: 6}, info)
}

func TestBatchCheckCloseStopsWatcher(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repoPath, cleanup := testhelper.InitBareRepo(t)
	defer cleanup()

	bc, err := NewBatchCheck(ctx, "git", repoPath)
	require.NoError(t, err)

	bc.Close()
	bc.Close()

	select {
	case <-bc.done:
	default:
		t.Fatal("close must release the context watcher")
	}
}
