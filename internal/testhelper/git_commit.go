package testhelper

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// CreateCommitOpts holds extra options for CreateCommit.
type CreateCommitOpts struct {
	Message  string
	ParentID string
}

const (
	committerName  = "Scrooge McDuck"
	committerEmail = "scrooge@mcduck.com"
)

// CreateCommit makes a new empty commit and updates the named branch to point
// to it. An empty branchName leaves all references untouched.
func CreateCommit(t testing.TB, repoPath, branchName string, opts *CreateCommitOpts) string {
	t.Helper()

	message := "message"
	var parentID string

	if opts != nil {
		if opts.Message != "" {
			message = opts.Message
		}
		parentID = opts.ParentID
	}

	treeID := chomp(MustRunCommand(t, bytes.NewReader(nil), "git", "-C", repoPath, "mktree"))

	// Use 'commit-tree' instead of 'commit' because we are in a bare
	// repository.
	commitArgs := []string{
		"-c", fmt.Sprintf("user.name=%s", committerName),
		"-c", fmt.Sprintf("user.email=%s", committerEmail),
		"-C", repoPath,
		"commit-tree", "-F", "-",
	}
	if parentID != "" {
		commitArgs = append(commitArgs, "-p", parentID)
	}
	commitArgs = append(commitArgs, treeID)

	commitID := chomp(MustRunCommand(t, bytes.NewBufferString(message), "git", commitArgs...))

	if branchName != "" {
		MustRunCommand(t, nil, "git", "-C", repoPath, "update-ref", "refs/heads/"+branchName, commitID)
	}

	return commitID
}

// WriteBlob writes content into the object database and returns the blob's ID.
func WriteBlob(t testing.TB, repoPath string, content []byte) string {
	t.Helper()
	return chomp(MustRunCommand(t, bytes.NewReader(content), "git", "-C", repoPath, "hash-object", "-w", "--stdin"))
}

func chomp(b []byte) string {
	return strings.TrimSpace(string(b))
}
