package testhelper

import (
	"path/filepath"
	"testing"
)

// InitBareRepo creates a new bare repository in a temporary directory and
// returns its path along with a cleanup function.
func InitBareRepo(t testing.TB) (string, func()) {
	t.Helper()

	dir, cleanup := TempDir(t)
	repoPath := filepath.Join(dir, "repo.git")

	MustRunCommand(t, nil, "git", "init", "--bare", "--quiet", repoPath)
	MustRunCommand(t, nil, "git", "-C", repoPath, "symbolic-ref", "HEAD", "refs/heads/master")

	return repoPath, cleanup
}
