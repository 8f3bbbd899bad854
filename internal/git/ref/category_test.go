package ref

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gitlab-org/gitref/internal/git"
)

func TestCategoryOf(t *testing.T) {
	testCases := []struct {
		name     string
		category Category
	}{
		{name: "refs/heads/master", category: CategoryBranch},
		{name: "refs/heads/feature/x", category: CategoryBranch},
		{name: "refs/remotes/origin/master", category: CategoryRemoteBranch},
		{name: "refs/tags/v1.0.0", category: CategoryTag},
		{name: "refs/notes/commits", category: CategoryNote},
		{name: "HEAD", category: CategoryOther},
		{name: "refs/merge-requests/1/head", category: CategoryOther},
		{name: "refs/headsup", category: CategoryOther},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.category, CategoryOf(tc.name))
		})
	}
}

func TestShortenerFor(t *testing.T) {
	testCases := []struct {
		category  Category
		canonical string
		short     string
	}{
		{category: CategoryBranch, canonical: "refs/heads/feature/x", short: "feature/x"},
		{category: CategoryRemoteBranch, canonical: "refs/remotes/origin/master", short: "origin/master"},
		{category: CategoryTag, canonical: "refs/tags/v1.0.0", short: "v1.0.0"},
		{category: CategoryNote, canonical: "refs/notes/commits", short: "commits"},
		{category: CategoryOther, canonical: "refs/merge-requests/1/head", short: "refs/merge-requests/1/head"},
		{category: CategoryBranch, canonical: "refs/tags/v1.0.0", short: "refs/tags/v1.0.0"},
		{category: Category(42), canonical: "refs/heads/master", short: "refs/heads/master"},
	}

	for _, tc := range testCases {
		t.Run(tc.category.String()+"/"+tc.canonical, func(t *testing.T) {
			shorten := ShortenerFor(tc.category)
			require.Equal(t, tc.short, shorten(tc.canonical))
			require.Equal(t, shorten(tc.canonical), shorten(tc.canonical), "shortening is deterministic")
		})
	}
}

func TestShortenByCategory(t *testing.T) {
	require.Equal(t, "master", ShortenByCategory("refs/heads/master"))
	require.Equal(t, "origin/master", ShortenByCategory("refs/remotes/origin/master"))
	require.Equal(t, "HEAD", ShortenByCategory("HEAD"))
}

func TestCategoryPrefix(t *testing.T) {
	require.Equal(t, git.HeadsPrefix, CategoryBranch.Prefix())
	require.Equal(t, "", CategoryOther.Prefix())
	require.Equal(t, "remote-branch", CategoryRemoteBranch.String())
}

func TestCanonicalNameWithPrefix(t *testing.T) {
	selectName := CanonicalNameWithPrefix(git.TagsPrefix)

	name, err := selectName(git.NewReference("v1.0.0", commitOID))
	require.NoError(t, err)
	require.Equal(t, "refs/tags/v1.0.0", name)

	name, err = selectName(git.NewReference("refs/tags/v1.0.0", commitOID))
	require.NoError(t, err)
	require.Equal(t, "refs/tags/v1.0.0", name)

	_, err = selectName(nil)
	require.Error(t, err)
}
