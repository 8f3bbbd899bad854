package main

import (
	"context"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gitlab.com/gitlab-org/gitref/internal/git/object"
	"gitlab.com/gitlab-org/gitref/internal/git/ref"
	"gitlab.com/gitlab-org/gitref/internal/git/repository"
)

const missingTarget = "(missing)"

func newBranchesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "branches",
		Short: "List local and remote-tracking branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd.Context(), opts, func(ctx context.Context, repo *repository.Repository) error {
				return listBranches(ctx, out(cmd), repo, resolverParallelism(opts))
			})
		},
	}
}

func newTagsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd.Context(), opts, func(ctx context.Context, repo *repository.Repository) error {
				return listTags(ctx, out(cmd), repo, resolverParallelism(opts))
			})
		},
	}
}

func listBranches(ctx context.Context, w io.Writer, repo *repository.Repository, parallelism int) error {
	branches, err := ref.Branches(ctx, repo)
	if err != nil {
		return err
	}

	resolvers := make([]ref.Resolver, 0, len(branches))
	for _, branch := range branches {
		resolvers = append(resolvers, branch)
	}
	if err := ref.Preload(ctx, parallelism, resolvers...); err != nil {
		return err
	}

	table := newTable(w, "Name", "Canonical", "Target")
	for _, branch := range branches {
		tip, ok, err := branch.Tip(ctx)
		if err != nil {
			return err
		}

		table.Append([]string{branch.Name(), branch.CanonicalName(), describeTarget(tip, ok)})
	}
	table.Render()

	return nil
}

func listTags(ctx context.Context, w io.Writer, repo *repository.Repository, parallelism int) error {
	tags, err := ref.Tags(ctx, repo)
	if err != nil {
		return err
	}

	resolvers := make([]ref.Resolver, 0, len(tags))
	for _, tag := range tags {
		resolvers = append(resolvers, tag)
	}
	if err := ref.Preload(ctx, parallelism, resolvers...); err != nil {
		return err
	}

	table := newTable(w, "Name", "Target", "Annotated")
	for _, tag := range tags {
		target, ok, err := tag.Target(ctx)
		if err != nil {
			return err
		}

		annotated, err := tag.IsAnnotated(ctx)
		if err != nil {
			return err
		}

		table.Append([]string{tag.Name(), describeTarget(target, ok), strconv.FormatBool(annotated)})
	}
	table.Render()

	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetColWidth(60)
	table.SetAutoWrapText(false)
	return table
}

func describeTarget[T object.Object](obj T, ok bool) string {
	if !ok {
		return missingTarget
	}
	return obj.ObjectID().String()
}
