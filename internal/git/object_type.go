package git

import "fmt"

// ObjectType is the type of a Git object.
type ObjectType int

const (
	// ObjectAny matches objects of every type.
	ObjectAny ObjectType = iota
	// ObjectCommit is a commit object.
	ObjectCommit
	// ObjectTree is a tree object.
	ObjectTree
	// ObjectBlob is a blob object.
	ObjectBlob
	// ObjectTag is an annotated tag object.
	ObjectTag
)

var objectTypeNames = map[ObjectType]string{
	ObjectAny:    "any",
	ObjectCommit: "commit",
	ObjectTree:   "tree",
	ObjectBlob:   "blob",
	ObjectTag:    "tag",
}

// ParseObjectType maps the type names printed by git to an ObjectType.
func ParseObjectType(name string) (ObjectType, error) {
	switch name {
	case "commit":
		return ObjectCommit, nil
	case "tree":
		return ObjectTree, nil
	case "blob":
		return ObjectBlob, nil
	case "tag":
		return ObjectTag, nil
	}

	return ObjectAny, fmt.Errorf("%w: unknown object type %q", ErrInvalidArg, name)
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}
