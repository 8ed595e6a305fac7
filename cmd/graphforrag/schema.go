package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newEnsureSchemaCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-schema",
		Short: "Create every constraint/index in the catalog that doesn't already exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			graph, _, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			if err := graph.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ensured")
			return nil
		},
	}
}

func newClearSchemaCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-schema",
		Short: "Drop every constraint/index in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			graph, _, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			if err := graph.ClearSchema(ctx); err != nil {
				return fmt.Errorf("clear schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema cleared")
			return nil
		},
	}
}

func newClearDataCmd(log *slog.Logger) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear-data",
		Short: "Delete every node and relationship in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to clear all data without --yes")
			}
			ctx := cmd.Context()
			graph, _, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			if err := graph.ClearData(ctx); err != nil {
				return fmt.Errorf("clear data: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the destructive delete")
	return cmd
}

func newDeleteSourceCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-source [uuid]",
		Short: "Cascade-delete a Source and its orphaned chunks/entities/relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceUUID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse source uuid %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			graph, _, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			counts, err := graph.DeleteSource(ctx, sourceUUID)
			if err != nil {
				return fmt.Errorf("delete source: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %d sources, %d chunks, %d products (%d demoted), %d mentions, %d relates_to, %d entities\n",
				counts.Sources, counts.Chunks, counts.Products, counts.ProductsDemoted, counts.MentionsRels, counts.RelatesToRels, counts.Entities)
			return nil
		},
	}
}
