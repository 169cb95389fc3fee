package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/render"
	"github.com/ledgerlens/ledgerlens/internal/tui"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

func viewCmd() *cobra.Command {
	var documentID int64

	cmd := &cobra.Command{
		Use:   "view [payload.json]",
		Short: "Open the interactive statement viewer",
		Long: `Open a statement in the terminal viewer: the rendered page text with
anchor markers on the left, the transaction and duplicate list on the right.

Reads a payload export file, or a stored statement with --id.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			payload, err := resolvePayload(ctx, args, documentID)
			if err != nil {
				return err
			}

			layout := render.New(payload.Pages)
			session := viewer.NewSession(payload, layout, viewer.DefaultConfig())

			return tui.Run(ctx, tui.Config{Session: session, Renderer: layout})
		},
	}

	cmd.Flags().Int64Var(&documentID, "id", 0, "statement id in the database")
	return cmd
}
