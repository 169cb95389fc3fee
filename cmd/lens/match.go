package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/render"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

func matchCmd() *cobra.Command {
	var (
		documentID int64
		zoom       float64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "match [payload.json]",
		Short: "Anchor every entry and report match outcomes",
		Long: `Run the anchoring engine over every page of a statement without the
interactive viewer, then report which entries matched, which did not, and
which lack page metadata entirely.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			payload, err := resolvePayload(ctx, args, documentID)
			if err != nil {
				return err
			}

			layout := render.New(payload.Pages)
			session := viewer.NewSession(payload, layout, viewer.DefaultConfig())
			if zoom != 1.0 {
				session.SetZoom(zoom)
			}

			pages := session.Pages()
			bar := progressbar.NewOptions(len(pages),
				progressbar.OptionSetDescription("anchoring"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			for _, page := range pages {
				session.RecomputeNow(page)
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			summary := session.Summary()
			fmt.Printf("%s\n", payload.Statement.Filename)
			fmt.Printf("  entries:        %d\n", summary.Total)
			fmt.Printf("  matched:        %d\n", summary.Outcomes.Matched)
			fmt.Printf("  not highlighted: %d\n", summary.Outcomes.Unmatched)
			fmt.Printf("  no page hint:   %d\n", summary.LackingPage)

			if verbose {
				printProblemEntries(session)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&documentID, "id", 0, "statement id in the database")
	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "zoom factor to match at")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list unmatched entries")
	return cmd
}

func printProblemEntries(session *viewer.Session) {
	for _, item := range session.Entries() {
		var reason string
		switch {
		case item.NotHighlighted():
			reason = "not highlighted"
		case item.LacksPage():
			reason = "page metadata unavailable"
		default:
			continue
		}
		page := "?"
		if item.Entry.PageNumber != nil {
			page = fmt.Sprintf("%d", *item.Entry.PageNumber)
		}
		narrative := item.Entry.Narrative
		if narrative == "" {
			narrative = "(no narrative)"
		}
		fmt.Printf("  %-10s page %-3s %-25s %s\n", item.Entry.ID, page, reason, narrative)
	}
}
