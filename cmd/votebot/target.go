package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrok/votebot"
)

func init() {
	rootCmd.AddCommand(targetCmd)
}

var targetCmd = &cobra.Command{
	Use:   "target VALUE",
	Short: "Check a VOTE_FOR value and print the target it resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := votebot.ParseTarget(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", target, target.Emoji())
		return nil
	},
}
