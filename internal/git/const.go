package git

const (
	// EmptyTreeID is the Git tree object hash that corresponds to an empty tree (directory)
	EmptyTreeID = ObjectID("4b825dc642cb6eb9a060e54bf8d69288fbee4904")

	// NullSHA is the special value that Git uses to signal a ref or object does not exist
	NullSHA = ObjectID("0000000000000000000000000000000000000000")
)

// Reference name prefixes of the well-known namespaces.
const (
	HeadsPrefix   = "refs/heads/"
	TagsPrefix    = "refs/tags/"
	RemotesPrefix = "refs/remotes/"
	NotesPrefix   = "refs/notes/"

	// HeadName is the name of the reference pointing at the current branch.
	HeadName = "HEAD"
)
