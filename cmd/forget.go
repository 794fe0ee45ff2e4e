package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Delete saved progress and start over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Tracker.Forget(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress deleted.")
		return nil
	},
}
