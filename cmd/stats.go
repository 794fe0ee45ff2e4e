package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gopherlings/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		tr := a.Tracker
		total := len(tr.Exercises())
		pct := 0.0
		if total > 0 {
			pct = float64(tr.NDone()) * 100 / float64(total)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Done:    %d/%d (%.1f%%)\n", tr.NDone(), total, pct)
		fmt.Fprintf(out, "Current: %s\n", theme.Path.Render(tr.Current().String()))
		fmt.Fprintf(out, "         %s\n", theme.ProgressBar(tr.NDone(), total, 30))
		return nil
	},
}
