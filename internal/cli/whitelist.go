package cli

import (
	"github.com/spf13/cobra"
)

func newWhitelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Manage the server whitelist",
	}

	cmd.AddCommand(newWhitelistListCmd())
	cmd.AddCommand(newWhitelistCheckCmd())
	cmd.AddCommand(newWhitelistAddCmd())
	cmd.AddCommand(newWhitelistRemoveCmd())

	return cmd
}

func newWhitelistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List whitelisted player names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := client.Whitelist()
			if err != nil {
				return err
			}
			newOutput(cmd).Print(WhitelistNames(names))
			return nil
		},
	}
}

func newWhitelistCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <uuid|name>",
		Short: "Check whether a player is whitelisted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := client.IsWhitelisted(args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(WhitelistCheck{Query: args[0], Whitelisted: ok})
			return nil
		},
	}
}

func newWhitelistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <uuid|name>",
		Short: "Add a player to the whitelist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.AddToWhitelist(args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(p)
			return nil
		},
	}
}

func newWhitelistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <uuid|name>",
		Short: "Remove a player from the whitelist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.RemoveFromWhitelist(args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(p)
			return nil
		},
	}
}
