package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/storage"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <payload.json>...",
		Short: "Store statement payload exports in the local database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, path := range args {
				payload, err := storage.LoadPayload(path)
				if err != nil {
					return err
				}
				if err := store.SaveStatementPayload(ctx, payload); err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				slog.Info("imported statement",
					"file", path,
					"statement", payload.Statement.ID,
					"transactions", len(payload.Transactions),
					"duplicates", len(payload.Duplicates),
					"pages", len(payload.Pages))
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			docs, err := store.ListStatements(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("no statements imported")
				return nil
			}
			for _, doc := range docs {
				fmt.Printf("%4d  %-40s %s\n", doc.ID, doc.Filename,
					doc.UploadedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
