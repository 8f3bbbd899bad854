package ref

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/testhelper"
)

func TestBranch(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repo := newTestRepository(t)

	testCases := []struct {
		ref        string
		name       string
		remote     string
		isHead     bool
		tip        git.ObjectID
		missingTip bool
	}{
		{ref: "refs/heads/master", name: "master", isHead: true, tip: commitOID},
		{ref: "refs/heads/feature/x", name: "feature/x", tip: otherOID},
		{ref: "refs/heads/gc-ed", name: "gc-ed", missingTip: true},
		{ref: "refs/remotes/origin/master", name: "origin/master", remote: "origin", tip: otherOID},
		{ref: "refs/remotes/origin/HEAD", name: "origin/HEAD", remote: "origin", tip: otherOID},
	}

	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			branch, err := NewBranch(repo.Repository, readRecord(t, repo, tc.ref))
			require.NoError(t, err)

			require.Equal(t, tc.ref, branch.CanonicalName())
			require.Equal(t, tc.name, branch.Name())
			require.Equal(t, tc.remote != "", branch.IsRemote())
			require.Equal(t, tc.remote, branch.RemoteName())

			isHead, err := branch.IsCurrentRepositoryHead(ctx)
			require.NoError(t, err)
			require.Equal(t, tc.isHead, isHead)

			tip, ok, err := branch.Tip(ctx)
			require.NoError(t, err)
			if tc.missingTip {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.tip, tip.ObjectID())
		})
	}
}

func TestBranchNilRecord(t *testing.T) {
	repo := newTestRepository(t)

	_, err := NewBranch(repo.Repository, nil)
	require.Error(t, err)
}

func TestBranchWithoutHead(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repo := newTestRepository(t)
	repo.refs.Delete(git.HeadName)

	branch, err := NewBranch(repo.Repository, readRecord(t, repo, "refs/heads/master"))
	require.NoError(t, err)

	isHead, err := branch.IsCurrentRepositoryHead(ctx)
	require.NoError(t, err)
	require.False(t, isHead)
}
