package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/gitlab-org/gitref/internal/git"
	"gitlab.com/gitlab-org/gitref/internal/git/ref"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Resolve a single reference",
		Long: `Resolve a single reference of any kind and print its names and target.

REF may be a full reference name or a name Git would expand, e.g. "master",
"v1.0.0" or "origin/master".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), opts, func(ctx context.Context, repo *repository.Repository) error {
				return showReference(ctx, out(cmd), repo, args[0])
			})
		},
	}
}

// expandReferenceName lists the names Git tries when resolving a short
// reference name, in order of precedence.
func expandReferenceName(name string) []string {
	return []string{
		name,
		"refs/" + name,
		git.TagsPrefix + name,
		git.HeadsPrefix + name,
		git.RemotesPrefix + name,
		git.RemotesPrefix + name + "/" + git.HeadName,
	}
}

func findReference(ctx context.Context, repo *repository.Repository, name string) (*git.Reference, error) {
	for _, candidate := range expandReferenceName(name) {
		record, err := repo.ReadReference(ctx, candidate)
		switch {
		case err == nil:
			return record, nil
		case errors.Is(err, git.ErrReferenceNotFound), errors.Is(err, git.ErrInvalidArg):
			continue
		default:
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %q", git.ErrReferenceNotFound, name)
}

func showReference(ctx context.Context, w io.Writer, repo *repository.Repository, name string) error {
	record, err := findReference(ctx, repo, name)
	if err != nil {
		return err
	}

	wrapper, err := ref.NewReference(repo, record)
	if err != nil {
		return err
	}

	target, ok, err := wrapper.TargetObject(ctx)
	if err != nil {
		return err
	}

	table := newTable(w, "Field", "Value")
	table.Append([]string{"canonical", wrapper.CanonicalName()})
	table.Append([]string{"name", wrapper.Name()})
	table.Append([]string{"category", ref.CategoryOf(wrapper.CanonicalName()).String()})
	if record.IsSymbolic() {
		table.Append([]string{"symbolic", record.SymbolicTarget()})
	}
	table.Append([]string{"target", describeTarget(target, ok)})
	if ok {
		table.Append([]string{"type", target.Type().String()})
	}
	table.Render()

	return nil
}
