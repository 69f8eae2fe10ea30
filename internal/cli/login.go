package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Verify a token against the server and save it to the token file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := NewClient(cfg.ServerURL, args[0]).Whitelist(); err != nil {
				return fmt.Errorf("token rejected: %w", err)
			}
			if err := cfg.SaveToken(args[0]); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			newOutput(cmd).PrintMessage(fmt.Sprintf("Token saved to %s", cfg.TokenFile))
			return nil
		},
	}
}
