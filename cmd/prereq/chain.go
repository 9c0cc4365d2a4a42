package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/receipt"
	"prereq-kit-sol/internal/svc"
	"prereq-kit-sol/internal/tools"
	"prereq-kit-sol/internal/types"
)

// record 写入回执；交易已确认，写入失败只提示不影响退出码
func record(ctx context.Context, w io.Writer, sc *svc.ServiceContext, rc receipt.Receipt) {
	if err := sc.Recorder.Record(ctx, rc); err != nil {
		fmt.Fprintf(w, "Warning: receipt not recorded: %v\n", err)
	}
}

func printTx(w io.Writer, sc *svc.ServiceContext, sig types.Signature) {
	fmt.Fprintf(w, "Signature: %s\n", sig)
	fmt.Fprintf(w, "Check out your TX here: %s\n", tools.ExplorerURL(sig, sc.Config.RpcConf.Cluster))
}

func (app *cli) airdropCmd() *cobra.Command {
	var (
		sol        string
		walletPath string
	)
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Request a devnet airdrop into the dev wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := tools.ParseSol(sol)
			if err != nil {
				return err
			}
			kp, err := loadWallet(app.walletOr(walletPath))
			if err != nil {
				return err
			}
			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx := cmd.Context()
			sig, err := sc.Payment.Airdrop(ctx, kp.Pubkey(), lamports)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Airdrop of %s SOL requested for %s\n", tools.FormatSol(lamports), kp.Pubkey())
			printTx(w, sc, sig)
			record(ctx, w, sc, receipt.Receipt{
				Signature: sig,
				Kind:      consts.TxKindAirdrop,
				To:        kp.Pubkey(),
				Lamports:  lamports,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&sol, "sol", tools.FormatSol(consts.DefaultAirdropLamports), "amount in SOL")
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.dev_wallet)")
	return cmd
}

func (app *cli) balanceCmd() *cobra.Command {
	var walletPath string
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Show the balance of an address or of the dev wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr types.Pubkey
			if len(args) == 1 {
				pk, err := types.TryPubkeyFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid address: %w", err)
				}
				addr = pk
			} else {
				kp, err := loadWallet(app.walletOr(walletPath))
				if err != nil {
					return err
				}
				addr = kp.Pubkey()
			}

			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			lamports, err := sc.Ledger.Balance(cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s SOL (%d lamports)\n", addr, tools.FormatSol(lamports), lamports)
			return nil
		},
	}
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.dev_wallet)")
	return cmd
}

func (app *cli) transferCmd() *cobra.Command {
	var (
		to         string
		sol        string
		walletPath string
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a fixed amount of SOL from the dev wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := parsePubkeyArg("to", to)
			if err != nil {
				return err
			}
			lamports, err := tools.ParseSol(sol)
			if err != nil {
				return err
			}
			kp, err := loadWallet(app.walletOr(walletPath))
			if err != nil {
				return err
			}
			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx := cmd.Context()
			res, err := sc.Payment.Send(ctx, kp, dest, lamports)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Transferred %s SOL to %s\n", tools.FormatSol(res.Lamports), res.To)
			printTx(w, sc, res.Signature)
			record(ctx, w, sc, receipt.Receipt{
				Signature: res.Signature,
				Kind:      consts.TxKindTransfer,
				From:      res.From,
				To:        res.To,
				Lamports:  res.Lamports,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVar(&sol, "sol", tools.FormatSol(consts.DefaultTransferLamports), "amount in SOL")
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.dev_wallet)")
	return cmd
}

func (app *cli) sweepCmd() *cobra.Command {
	var (
		to         string
		walletPath string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Transfer the whole dev wallet balance minus the network fee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := parsePubkeyArg("to", to)
			if err != nil {
				return err
			}
			kp, err := loadWallet(app.walletOr(walletPath))
			if err != nil {
				return err
			}
			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx := cmd.Context()
			res, err := sc.Sweeper.Sweep(ctx, kp, dest)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Swept %s SOL to %s (balance %s, fee %s)\n",
				tools.FormatSol(res.Transferred), dest, tools.FormatSol(res.Balance), tools.FormatSol(res.Fee))
			printTx(w, sc, res.Signature)
			record(ctx, w, sc, receipt.Receipt{
				Signature: res.Signature,
				Kind:      consts.TxKindSweep,
				From:      kp.Pubkey(),
				To:        dest,
				Lamports:  res.Transferred,
				Fee:       res.Fee,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.dev_wallet)")
	return cmd
}

func (app *cli) enrollCmd() *cobra.Command {
	var walletPath string
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll the enroll wallet with the prereq program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if walletPath == "" {
				walletPath = app.cfg.WalletConf.EnrollWallet
			}
			kp, err := loadWallet(walletPath)
			if err != nil {
				return err
			}
			sc, err := app.service()
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx := cmd.Context()
			res, err := sc.Invoker.Enroll(ctx, kp)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Prereq account: %s\n", res.Accounts.Prereq)
			fmt.Fprintf(w, "Mint:           %s\n", res.Accounts.Mint)
			printTx(w, sc, res.Signature)
			record(ctx, w, sc, receipt.Receipt{
				Signature: res.Signature,
				Kind:      consts.TxKindEnroll,
				From:      kp.Pubkey(),
				To:        res.Accounts.Prereq,
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.enroll_wallet)")
	return cmd
}

func (app *cli) walletOr(path string) string {
	if path != "" {
		return path
	}
	return app.cfg.WalletConf.DevWallet
}
