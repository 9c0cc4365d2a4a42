package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/receipt"
	"prereq-kit-sol/internal/tools"
	"prereq-kit-sol/internal/types"
)

func printReceipt(w io.Writer, r *receipt.Receipt) {
	fmt.Fprintf(w, "%s  %-8s  %s  %s SOL  %s\n",
		time.Unix(r.CreatedAt, 0).Format(time.RFC3339), r.KindName(), r.Signature,
		tools.FormatSol(r.Lamports), tools.ExplorerURL(r.Signature, r.Cluster))
}

func (app *cli) receiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Query recorded transaction receipts (requires receipt.redis_addr)",
	}

	get := &cobra.Command{
		Use:     "get <kind> <signature>",
		Short:   "Show one receipt",
		Example: `  prereq receipt get sweep 5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnb...`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := consts.TxKindFromName(args[0])
			if kind == 0 {
				return fmt.Errorf("unknown receipt kind %q", args[0])
			}
			sig, err := types.SignatureFromBase58(args[1])
			if err != nil {
				return fmt.Errorf("invalid signature: %w", err)
			}

			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			r, err := sc.Recorder.Get(cmd.Context(), uint8(kind), sig)
			if err != nil {
				return err
			}
			printReceipt(cmd.OutOrStdout(), r)
			return nil
		},
	}

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent receipts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			list, err := sc.Recorder.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range list {
				printReceipt(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	recent.Flags().IntVarP(&limit, "limit", "n", 10, "number of receipts to list")

	cmd.AddCommand(get, recent)
	return cmd
}
