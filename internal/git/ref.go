package git

import (
	"fmt"
	"strings"
)

// Reference is a low-level reference record as read from a reference store.
// A reference is either direct, holding the ID of the object it points to,
// or symbolic, holding the name of another reference.
type Reference struct {
	name           string
	target         ObjectID
	symbolicTarget string
}

// NewReference creates a direct reference pointing at oid.
func NewReference(name string, oid ObjectID) *Reference {
	return &Reference{name: name, target: oid}
}

// NewSymbolicReference creates a reference pointing at the reference named target.
func NewSymbolicReference(name, target string) *Reference {
	return &Reference{name: name, symbolicTarget: target}
}

// Name returns the fully qualified name of the reference.
func (r *Reference) Name() string {
	return r.name
}

// IsSymbolic reports whether the reference names another reference.
func (r *Reference) IsSymbolic() bool {
	return r.symbolicTarget != ""
}

// Target returns the object ID a direct reference points at. The second return
// value is false for symbolic references and for direct references that carry
// no object ID.
func (r *Reference) Target() (ObjectID, bool) {
	if r.IsSymbolic() || r.target.IsZero() {
		return "", false
	}
	return r.target, true
}

// SymbolicTarget returns the name of the reference a symbolic reference
// points at, or an empty string for direct references.
func (r *Reference) SymbolicTarget() string {
	return r.symbolicTarget
}

func (r *Reference) String() string {
	if r.IsSymbolic() {
		return fmt.Sprintf("%s -> %s", r.name, r.symbolicTarget)
	}
	return fmt.Sprintf("%s %s", r.target, r.name)
}

// ValidateReferenceName checks name against the subset of git-check-ref-format(1)
// rules relevant when reading references. Apart from all-caps pseudo references
// like HEAD, names must live below refs/.
func ValidateReferenceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty reference name", ErrInvalidArg)
	}

	if isPseudoRef(name) {
		return nil
	}

	switch {
	case !strings.HasPrefix(name, "refs/"):
		return fmt.Errorf("%w: reference %q is neither below refs/ nor a pseudo reference", ErrInvalidArg, name)
	case strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/"):
		return fmt.Errorf("%w: reference %q can't start or end with '/'", ErrInvalidArg, name)
	case strings.HasSuffix(name, "."):
		return fmt.Errorf("%w: reference %q can't end with '.'", ErrInvalidArg, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: reference %q can't contain '..'", ErrInvalidArg, name)
	case strings.Contains(name, "//"):
		return fmt.Errorf("%w: reference %q can't contain '//'", ErrInvalidArg, name)
	case strings.Contains(name, "@{"):
		return fmt.Errorf("%w: reference %q can't contain '@{'", ErrInvalidArg, name)
	case name == "@":
		return fmt.Errorf("%w: reference can't be '@'", ErrInvalidArg)
	}

	for _, component := range strings.Split(name, "/") {
		if strings.HasPrefix(component, ".") {
			return fmt.Errorf("%w: reference %q has a component starting with '.'", ErrInvalidArg, name)
		}
		if strings.HasSuffix(component, ".lock") {
			return fmt.Errorf("%w: reference %q has a component ending with '.lock'", ErrInvalidArg, name)
		}
	}

	for _, c := range name {
		if c < 0x20 || c == 0x7f || strings.ContainsRune(" ~^:?*[\\", c) {
			return fmt.Errorf("%w: reference %q contains invalid character %q", ErrInvalidArg, name, c)
		}
	}

	return nil
}

// isPseudoRef reports whether name is a top-level all-caps reference like HEAD
// or FETCH_HEAD.
func isPseudoRef(name string) bool {
	for _, c := range name {
		if (c < 'A' || c > 'Z') && c != '_' {
			return false
		}
	}
	return true
}
