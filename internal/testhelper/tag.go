package testhelper

import (
	"bytes"
	"fmt"
	"testing"
)

// CreateTagOpts holds extra options for CreateTag.
type CreateTagOpts struct {
	Message string
}

// CreateTag creates a new tag. The tag is annotated if a message is given.
func CreateTag(t testing.TB, repoPath, tagName, targetID string, opts *CreateTagOpts) string {
	t.Helper()

	var message string
	if opts != nil {
		message = opts.Message
	}

	// message can be very large, passing it directly in args would blow things up!
	stdin := bytes.NewBufferString(message)

	args := []string{"-C", repoPath,
		"-c", fmt.Sprintf("user.name=%s", committerName),
		"-c", fmt.Sprintf("user.email=%s", committerEmail),
		"tag",
	}
	if message != "" {
		args = append(args, "-F", "-")
	}
	args = append(args, tagName, targetID)

	MustRunCommand(t, stdin, "git", args...)

	return chomp(MustRunCommand(t, nil, "git", "-C", repoPath, "rev-parse", "refs/tags/"+tagName))
}
