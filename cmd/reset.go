package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Mark an exercise as pending and make it current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ind, err := a.Lookup(args[0])
		if err != nil {
			return err
		}
		if err := a.Tracker.SetPending(ind); err != nil {
			return err
		}
		if err := a.Tracker.SetCurrentByIndex(ind); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "The exercise %s has been reset\n", args[0])
		return nil
	},
}
