package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gopherlings/internal/ui/theme"
)

var hintCmd = &cobra.Command{
	Use:   "hint [name]",
	Short: "Show the hint for the current or named exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		ind, err := a.Lookup(name)
		if err != nil {
			return err
		}

		ex := a.Registry.At(ind)
		if ex.Hint == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No hint for %s.\n", ex.Name)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render(ex.Hint))
		return nil
	},
}
