package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/athanorlabs/go-ecvrf"
)

func (a *app) newProveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Produce a VRF proof and output for an input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := a.secretKey()
			if err != nil {
				return err
			}

			alpha, err := a.alpha()
			if err != nil {
				return err
			}

			pi, err := ecvrf.Prove(sk, alpha)
			if err != nil {
				return err
			}

			beta, err := ecvrf.ProofToHash(pi[:])
			if err != nil {
				return err
			}

			a.log.Debug("proved", zap.Int("alpha_len", len(alpha)), zap.Stringer("output", beta))
			fmt.Fprintf(cmd.OutOrStdout(), "proof: %s\noutput: %s\n", pi, beta)
			return nil
		},
	}

	cmd.Flags().String("secret-key", "", "hex-encoded 32-byte secret key")
	addAlphaFlags(cmd)
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a VRF proof and print its output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pk, err := a.publicKey()
			if err != nil {
				return err
			}

			pi, err := a.proof()
			if err != nil {
				return err
			}

			alpha, err := a.alpha()
			if err != nil {
				return err
			}

			beta, err := ecvrf.Verify(pk, alpha, pi)
			if err != nil {
				a.log.Info("proof rejected", zap.Stringer("public_key", pk))
				return fmt.Errorf("verification failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid\noutput: %s\n", beta)
			return nil
		},
	}

	cmd.Flags().String("public-key", "", "hex-encoded 32-byte public key")
	cmd.Flags().String("proof", "", "hex-encoded 80-byte proof")
	addAlphaFlags(cmd)
	return cmd
}

func (a *app) newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the VRF output of a proof without verifying it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pi, err := a.proof()
			if err != nil {
				return err
			}

			beta, err := ecvrf.ProofToHash(pi)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), beta)
			return nil
		},
	}

	cmd.Flags().String("proof", "", "hex-encoded 80-byte proof")
	return cmd
}
