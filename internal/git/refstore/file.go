package refstore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/gitref/internal/git"
)

const symbolicPrefix = "ref: "

// FileStore reads reference records from the files of a Git directory: loose
// references under refs/ plus top-level pseudo references, and the
// packed-refs file. Loose references take precedence over packed ones.
type FileStore struct {
	gitDir string
}

// NewFileStore returns a FileStore reading the Git directory at gitDir.
func NewFileStore(gitDir string) *FileStore {
	return &FileStore{gitDir: gitDir}
}

func (s *FileStore) ReadReference(ctx context.Context, name string) (*git.Reference, error) {
	if err := git.ValidateReferenceName(name); err != nil {
		return nil, err
	}

	ref, err := s.readLoose(name)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, git.ErrReferenceNotFound) {
		return nil, err
	}

	packed, err := s.readPacked()
	if err != nil {
		return nil, err
	}

	if ref, ok := packed[name]; ok {
		return ref, nil
	}

	return nil, git.ErrReferenceNotFound
}

func (s *FileStore) ListReferences(ctx context.Context, prefix string) ([]*git.Reference, error) {
	refs, err := s.readPacked()
	if err != nil {
		return nil, err
	}

	root := filepath.Join(s.gitDir, "refs")
	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.gitDir, path)
		if err != nil {
			return err
		}

		name := filepath.ToSlash(rel)
		if git.ValidateReferenceName(name) != nil {
			return nil
		}

		ref, err := s.readLoose(name)
		if err != nil {
			if errors.Is(err, git.ErrInvalidArg) {
				log.WithError(err).WithField("reference", name).Warn("ignoring broken reference")
				delete(refs, name)
				return nil
			}
			return err
		}
		refs[name] = ref

		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk loose references: %w", err)
	}

	var result []*git.Reference
	for name, ref := range refs {
		if strings.HasPrefix(name, prefix) {
			result = append(result, ref)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (s *FileStore) readLoose(name string) (*git.Reference, error) {
	data, err := ioutil.ReadFile(filepath.Join(s.gitDir, filepath.FromSlash(name)))
	if err != nil {
		if os.IsNotExist(err) || isDirectoryError(err) {
			return nil, git.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("read loose reference %q: %w", name, err)
	}

	value := strings.TrimSpace(string(data))
	if strings.HasPrefix(value, symbolicPrefix) {
		return git.NewSymbolicReference(name, strings.TrimSpace(value[len(symbolicPrefix):])), nil
	}

	oid, err := git.NewObjectIDFromHex(value)
	if err != nil {
		return nil, fmt.Errorf("loose reference %q: %w", name, err)
	}

	return git.NewReference(name, oid), nil
}

// readPacked parses packed-refs. Lines of the header start with '#' and lines
// carrying the peeled value of the preceding annotated tag start with '^'.
func (s *FileStore) readPacked() (map[string]*git.Reference, error) {
	refs := make(map[string]*git.Reference)

	data, err := ioutil.ReadFile(filepath.Join(s.gitDir, "packed-refs"))
	if err != nil {
		if os.IsNotExist(err) {
			return refs, nil
		}
		return nil, fmt.Errorf("read packed-refs: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("unexpected packed-refs line: %q", line)
		}

		oid, err := git.NewObjectIDFromHex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("packed-refs: %w", err)
		}

		refs[fields[1]] = git.NewReference(fields[1], oid)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan packed-refs: %w", err)
	}

	return refs, nil
}

func isDirectoryError(err error) bool {
	return errors.Is(err, syscall.EISDIR)
}
