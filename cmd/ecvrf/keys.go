package main

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/athanorlabs/go-ecvrf"
	"github.com/athanorlabs/go-ecvrf/types"
)

func (a *app) newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new secret key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sk types.SecretKey
			if _, err := rand.Read(sk[:]); err != nil {
				return fmt.Errorf("failed to read random bytes: %w", err)
			}

			pk := ecvrf.DerivePublicKey(sk)
			a.log.Debug("generated key pair", zap.Stringer("public_key", pk))

			skText, err := sk.MarshalText()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "secret-key: %s\npublic-key: %s\n", skText, pk)
			return nil
		},
	}
}

func (a *app) newPubkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := a.secretKey()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ecvrf.DerivePublicKey(sk))
			return nil
		},
	}

	cmd.Flags().String("secret-key", "", "hex-encoded 32-byte secret key")
	return cmd
}
