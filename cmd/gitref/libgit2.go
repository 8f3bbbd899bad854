//go:build static && system_libgit2
// +build static,system_libgit2

package main

import (
	_ "gitlab.com/gitlab-org/gitref/internal/git/libgit2"
)
