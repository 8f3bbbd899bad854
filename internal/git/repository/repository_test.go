package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gitlab-org/gitref/internal/config"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/catfile"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/refstore"
	"gitlab.com/gitlab-org/gitref/internal/testhelper"
)

const (
	commitOID = git.ObjectID("1e292f8fedd741b75372e19097c76d327140c312")
	blobOID   = git.ObjectID("cfe32cf61b73a0d5e9f13e774abde7ff789b1660")
	missingID = git.ObjectID("5937ac0a7beb003549fc5fd26fc247adbce4a52e")
)

func newTestRepository(t *testing.T) *Repository {
	repo, err := New(
		refstore.NewMemoryStore(git.NewReference("refs/heads/master", commitOID)),
		catfile.NewMemoryStore(
			catfile.ObjectInfo{Oid: commitOID, Type: git.ObjectCommit, Size: 221},
			catfile.ObjectInfo{Oid: blobOID, Type: git.ObjectBlob, Size: 6},
		),
	)
	require.NoError(t, err)
	return repo
}

func TestNewInvalidArguments(t *testing.T) {
	_, err := New(nil, catfile.NewMemoryStore())
	require.True(t, errors.Is(err, git.ErrInvalidArg))

	_, err = New(refstore.NewMemoryStore(), nil)
	require.True(t, errors.Is(err, git.ErrInvalidArg))
}

func TestLookup(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repo := newTestRepository(t)

	commit, ok, err := Lookup[*object.Commit](ctx, repo, commitOID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, commitOID, commit.ObjectID())

	obj, ok, err := Lookup[object.Object](ctx, repo, blobOID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, git.ObjectBlob, obj.Type())

	_, ok, err = Lookup[*object.Commit](ctx, repo, blobOID)
	require.NoError(t, err)
	require.False(t, ok, "type mismatch must not be found")

	commit, ok, err = Lookup[*object.Commit](ctx, repo, missingID)
	require.NoError(t, err)
	require.False(t, ok, "missing object must not be found")
	require.Nil(t, commit)
}

type brokenReader struct{}

var errBroken = errors.New("broken pipe")

func (brokenReader) Info(context.Context, git.ObjectID) (*catfile.ObjectInfo, error) {
	return nil, errBroken
}

func TestLookupReaderFailure(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repo, err := New(refstore.NewMemoryStore(), brokenReader{})
	require.NoError(t, err)

	_, ok, err := Lookup[*object.Commit](ctx, repo, commitOID)
	require.False(t, ok)
	require.True(t, errors.Is(err, errBroken))
}

func TestResolveToDirectDepth(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	refs := refstore.NewMemoryStore(
		git.NewSymbolicReference("refs/heads/a", "refs/heads/b"),
		git.NewSymbolicReference("refs/heads/b", "refs/heads/c"),
		git.NewReference("refs/heads/c", commitOID),
	)

	shallow, err := New(refs, catfile.NewMemoryStore(), WithMaxSymrefDepth(1))
	require.NoError(t, err)

	head, err := shallow.ReadReference(ctx, "refs/heads/a")
	require.NoError(t, err)

	direct, err := shallow.ResolveToDirect(ctx, head)
	require.NoError(t, err)
	require.Nil(t, direct)

	deep, err := New(refs, catfile.NewMemoryStore())
	require.NoError(t, err)

	direct, err = deep.ResolveToDirect(ctx, head)
	require.NoError(t, err)
	require.Equal(t, "refs/heads/c", direct.Name())
}

type closeCounter struct{ closed int }

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestClose(t *testing.T) {
	closer := &closeCounter{}

	repo, err := New(refstore.NewMemoryStore(), catfile.NewMemoryStore(), WithCloser(closer))
	require.NoError(t, err)

	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())
	require.Equal(t, 1, closer.closed)
}

func TestOpen(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	repoPath, cleanup := testhelper.InitBareRepo(t)
	defer cleanup()

	commitID := git.ObjectID(testhelper.CreateCommit(t, repoPath, "master", nil))

	cfg := config.Cfg{
		Repository: config.Repository{Path: repoPath},
		Git:        config.Git{Backend: config.BackendGit, CatfileCacheSize: 10},
	}
	require.NoError(t, cfg.Validate())

	repo, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer repo.Close()

	require.IsType(t, &catfile.Cache{}, repo.Objects())

	head, err := repo.ReadReference(ctx, git.HeadName)
	require.NoError(t, err)
	require.True(t, head.IsSymbolic())

	direct, err := repo.ResolveToDirect(ctx, head)
	require.NoError(t, err)
	require.Equal(t, "refs/heads/master", direct.Name())

	oid, ok := direct.Target()
	require.True(t, ok)
	require.Equal(t, commitID, oid)

	commit, ok, err := Lookup[*object.Commit](ctx, repo, oid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, commitID, commit.ObjectID())
}

func TestOpenUnknownBackend(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	_, err := Open(ctx, config.Cfg{Git: config.Git{Backend: "jgit"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), `backend "jgit" is not available`)
}

func TestRegisterBackend(t *testing.T) {
	ctx, cancel := testhelper.Context()
	defer cancel()

	RegisterBackend("memory", func(context.Context, config.Cfg) (Backend, error) {
		return Backend{
			Refs:    refstore.NewMemoryStore(git.NewReference("refs/heads/master", commitOID)),
			Objects: catfile.NewMemoryStore(catfile.ObjectInfo{Oid: commitOID, Type: git.ObjectCommit}),
		}, nil
	})
	require.Contains(t, Backends(), "memory")
	require.Contains(t, Backends(), config.BackendGit)

	repo, err := Open(ctx, config.Cfg{Git: config.Git{Backend: "memory"}})
	require.NoError(t, err)

	ref, err := repo.ReadReference(ctx, "refs/heads/master")
	require.NoError(t, err)
	require.Equal(t, "refs/heads/master", ref.Name())
}
