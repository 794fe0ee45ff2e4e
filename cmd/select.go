package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/gopherlings/internal/ui/theme"
)

var selectCmd = &cobra.Command{
	Use:   "select <number|name>",
	Short: "Make an exercise the current one",
	Long:  "Make an exercise the current one, by its number in `gopherlings list` or by name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		tr := a.Tracker
		if n, convErr := strconv.Atoi(args[0]); convErr == nil {
			err = tr.SetCurrentByIndex(n - 1)
		} else {
			err = tr.SetCurrentByName(args[0])
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Current exercise: %s\n", theme.Path.Render(tr.Current().String()))
		return nil
	},
}
