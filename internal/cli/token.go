package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/restadmin/internal/config"
	"github.com/mcoot/restadmin/internal/dependencies/random"
)

func newGenTokenCmd(rng random.Random) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "gen-token",
		Short: "Generate a token suitable for the server config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < config.MinTokenLength {
				return fmt.Errorf("token length must be at least %d", config.MinTokenLength)
			}
			token, err := random.Token(rng, length)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			newOutput(cmd).PrintMessage(token)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 32, "Token length")

	return cmd
}
