package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gopherlings/internal/progress"
	"github.com/abhisek/gopherlings/internal/report"
	"github.com/abhisek/gopherlings/internal/ui/theme"
)

var runCmd = &cobra.Command{
	Use:   "run [name]",
	Short: "Run the current exercise, or select and run the named one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return runCurrent(cmd, name)
	},
}

// runCurrent runs the current exercise and, when it passes, advances.
func runCurrent(cmd *cobra.Command, name string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	tr := a.Tracker

	if name != "" {
		if err := tr.SetCurrentByName(name); err != nil {
			return err
		}
	} else if !tr.Restored() && tr.WelcomeMessage() != "" {
		fmt.Fprintln(out, tr.WelcomeMessage())
	}

	ex := tr.Current()
	fmt.Fprintf(out, "Running %s\n\n", theme.Path.Render(ex.String()))

	res, err := a.Runner.Exec(cmd.Context(), ex)
	if err != nil {
		return fmt.Errorf("run %s: %w", ex, err)
	}
	if !res.Success {
		fmt.Fprintf(out, "\n%s Ran %s with errors\n", theme.Incorrect.Render("✗"), ex)
		if ex.Hint != "" {
			fmt.Fprintln(out, theme.Hint.Render("Stuck? Run `gopherlings hint` for a hint."))
		}
		return errExerciseFailed
	}
	fmt.Fprintf(out, "\n%s Successfully ran %s\n", theme.Correct.Render("✓"), ex)

	outcome, err := tr.MarkCurrentDoneAndAdvance(cmd.Context(), report.NewTerminal(out))
	if err != nil {
		return err
	}
	if outcome == progress.AllDone {
		return nil
	}

	next := tr.Current()
	fmt.Fprintf(out, "\nProgress: %s %d/%d\n", theme.ProgressBar(tr.NDone(), len(tr.Exercises()), 30), tr.NDone(), len(tr.Exercises()))
	fmt.Fprintf(out, "Next exercise: %s\n", theme.Path.Render(next.String()))
	return nil
}
