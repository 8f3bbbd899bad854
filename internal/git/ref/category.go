package ref

import (
	"fmt"
	"strings"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// Category is the kind of a reference, derived from its namespace.
type Category int

const (
	// CategoryOther covers every reference outside the well-known namespaces, e.g. HEAD.
	CategoryOther Category = iota
	// CategoryBranch is a local branch under refs/heads/.
	CategoryBranch
	// CategoryRemoteBranch is a remote-tracking branch under refs/remotes/.
	CategoryRemoteBranch
	// CategoryTag is a tag under refs/tags/.
	CategoryTag
	// CategoryNote is a notes reference under refs/notes/.
	CategoryNote
)

var categoryPrefixes = map[Category]string{
	CategoryBranch:       git.HeadsPrefix,
	CategoryRemoteBranch: git.RemotesPrefix,
	CategoryTag:          git.TagsPrefix,
	CategoryNote:         git.NotesPrefix,
}

var shorteners = map[Category]Shortener{
	CategoryOther:        Identity,
	CategoryBranch:       trimPrefix(git.HeadsPrefix),
	CategoryRemoteBranch: trimPrefix(git.RemotesPrefix),
	CategoryTag:          trimPrefix(git.TagsPrefix),
	CategoryNote:         trimPrefix(git.NotesPrefix),
}

// CategoryOf classifies a canonical reference name.
func CategoryOf(canonicalName string) Category {
	for category, prefix := range categoryPrefixes {
		if strings.HasPrefix(canonicalName, prefix) {
			return category
		}
	}
	return CategoryOther
}

// Prefix returns the namespace of the category, or an empty string for CategoryOther.
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

func (c Category) String() string {
	switch c {
	case CategoryOther:
		return "other"
	case CategoryBranch:
		return "branch"
	case CategoryRemoteBranch:
		return "remote-branch"
	case CategoryTag:
		return "tag"
	case CategoryNote:
		return "note"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ShortenerFor returns the shortening rule of category. Unknown categories
// keep names unchanged.
func ShortenerFor(category Category) Shortener {
	if shorten, ok := shorteners[category]; ok {
		return shorten
	}
	return Identity
}

// ShortenByCategory shortens canonicalName with the rule of the category it
// belongs to.
func ShortenByCategory(canonicalName string) string {
	return ShortenerFor(CategoryOf(canonicalName))(canonicalName)
}

// Identity is the Shortener keeping names unchanged.
func Identity(canonicalName string) string {
	return canonicalName
}

func trimPrefix(prefix string) Shortener {
	return func(canonicalName string) string {
		return strings.TrimPrefix(canonicalName, prefix)
	}
}

// CanonicalNameOf is the NameSelector returning the name of the record.
func CanonicalNameOf(record *git.Reference) (string, error) {
	if record == nil {
		return "", fmt.Errorf("%w: nil reference", git.ErrInvalidArg)
	}
	return record.Name(), nil
}

// CanonicalNameWithPrefix returns a NameSelector qualifying the record's name
// with prefix unless it already starts with it.
func CanonicalNameWithPrefix(prefix string) NameSelector {
	return func(record *git.Reference) (string, error) {
		name, err := CanonicalNameOf(record)
		if err != nil {
			return "", err
		}

		if strings.HasPrefix(name, prefix) {
			return name, nil
		}
		return prefix + name, nil
	}
}
