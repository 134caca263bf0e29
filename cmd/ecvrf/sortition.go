package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/athanorlabs/go-ecvrf/sortition"
)

func (a *app) newSortitionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sortition",
		Short: "Draw winners from a participant file and verify the draw",
		Long: `sortition reads one participant per line from --participants (blank
lines are skipped), proves the list under the secret key and prints the
winners together with the proof and public key needed to check them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := a.secretKey()
			if err != nil {
				return err
			}

			path := a.v.GetString("participants")
			if path == "" {
				return errNoPartsFile
			}

			participants, err := readParticipants(path)
			if err != nil {
				return err
			}

			n := a.v.GetInt("winners")
			s := sortition.New(sortition.WithLogger(a.log))

			res, err := s.Draw(sk, participants, n)
			if err != nil {
				return err
			}

			verifyErr := s.Check(res)
			a.log.Info("sortition complete",
				zap.Int("participants", len(participants)),
				zap.Int("winners", n),
				zap.Bool("verified", verifyErr == nil),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "winners:")
			for _, w := range res.Winners {
				fmt.Fprintf(out, "  %s\n", w)
			}
			fmt.Fprintf(out, "proof: %s\npublic-key: %s\nverified: %t\n", res.Proof, res.PublicKey, verifyErr == nil)

			return verifyErr
		},
	}

	cmd.Flags().String("secret-key", "", "hex-encoded 32-byte secret key")
	cmd.Flags().String("participants", "", "file with one participant per line")
	cmd.Flags().Int("winners", 1, "number of winners to draw")
	return cmd
}

func readParticipants(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var participants []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		participants = append(participants, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return participants, nil
}
