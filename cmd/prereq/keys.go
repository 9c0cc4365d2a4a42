package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/keycodec"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
)

func (app *cli) keygenCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new keypair",
		Example: `  prereq keygen
  prereq keygen --out dev-wallet.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := wallet.NewKeypair()
			if err != nil {
				return err
			}
			if out != "" {
				if err := wallet.SaveKeypairFile(out, kp); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "You've generated a new Solana wallet: %s\n", kp.Pubkey())
			if out != "" {
				fmt.Fprintf(w, "Saved to %s\n", out)
				return nil
			}
			fmt.Fprintf(w, "To save your wallet, copy and paste the following into a JSON file:\n%s\n", keycodec.FormatArray(kp.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the keypair to this file (must not exist)")
	return cmd
}

func (app *cli) base58ToWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base58-to-wallet",
		Short: "Convert a base58 private key read from stdin into a byte array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Enter your base58 private key:")
			line, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			arr, err := keycodec.Base58ToArray(line)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), arr)
			return nil
		},
	}
}

func (app *cli) walletToBase58Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet-to-base58",
		Short: "Convert a byte array read from stdin into a base58 private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Enter your wallet byte array:")
			line, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			s, err := keycodec.ArrayToBase58(line)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

var errSignatureMismatch = errors.New("signature verification failed")

func (app *cli) signCmd() *cobra.Command {
	var (
		message    string
		walletPath string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with the dev wallet and verify the signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if walletPath == "" {
				walletPath = app.cfg.WalletConf.DevWallet
			}
			kp, err := loadWallet(walletPath)
			if err != nil {
				return err
			}

			sig := kp.Sign([]byte(message))
			if !wallet.Verify(kp.Pubkey(), []byte(message), sig) {
				return errSignatureMismatch
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Address:   %s\n", kp.Pubkey())
			fmt.Fprintf(w, "Message:   %s\n", message)
			fmt.Fprintf(w, "Signature: %s\n", sig)
			fmt.Fprintln(w, "Verified:  true")
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", consts.DefaultVerifyMessage, "message to sign")
	cmd.Flags().StringVarP(&walletPath, "wallet", "w", "", "keypair file (defaults to wallet.dev_wallet)")
	return cmd
}

func parsePubkeyArg(name, s string) (types.Pubkey, error) {
	if s == "" {
		return types.Pubkey{}, fmt.Errorf("--%s is required", name)
	}
	pk, err := types.TryPubkeyFromBase58(s)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return pk, nil
}
