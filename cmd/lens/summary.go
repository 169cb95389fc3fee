package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/normalize"
	"github.com/ledgerlens/ledgerlens/internal/token"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

func summaryCmd() *cobra.Command {
	var documentID int64

	cmd := &cobra.Command{
		Use:   "summary [payload.json]",
		Short: "Print statement metrics and the status breakdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := resolvePayload(cmd.Context(), args, documentID)
			if err != nil {
				return err
			}

			metrics := payload.Metrics
			fmt.Printf("%s (uploaded %s)\n", payload.Statement.Filename,
				payload.Statement.UploadedAt.Format("2006-01-02"))
			fmt.Printf("  total credit:  %s\n", token.FormatAmount(metrics.TotalCredit))
			fmt.Printf("  total debit:   %s\n", token.FormatAmount(metrics.TotalDebit))
			fmt.Printf("  transactions:  %d\n", metrics.TotalTransactions)
			fmt.Printf("  duplicates:    %d\n", metrics.DuplicateCount)
			fmt.Printf("  archived:      %d\n", metrics.ArchivedCount)

			fmt.Println("  assignment breakdown:")
			for _, status := range model.StatusOrder {
				if count, ok := metrics.AssignmentBreakdown[status]; ok {
					fmt.Printf("    %-16s %d\n", status.Label(), count)
				}
			}

			entries := viewer.StatusCounts(
				normalize.Entries(payload.Transactions, payload.Duplicates))
			fmt.Println("  normalized entries:")
			for _, status := range model.StatusOrder {
				if count := entries[status]; count > 0 {
					fmt.Printf("    %-16s %d\n", status.Label(), count)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&documentID, "id", 0, "statement id in the database")
	return cmd
}
