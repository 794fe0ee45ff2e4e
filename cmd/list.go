package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/gopherlings/internal/progress"
	"github.com/abhisek/gopherlings/internal/ui/theme"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all exercises and their state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		tr := a.Tracker
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, exerciseTable(tr))

		total := len(tr.Exercises())
		fmt.Fprintf(out, "\nProgress: %s %d/%d\n", theme.ProgressBar(tr.NDone(), total, 30), tr.NDone(), total)
		return nil
	},
}

// exerciseTable lays out one row per exercise. Columns are measured on
// rendered width so styled cells stay aligned.
func exerciseTable(tr *progress.Tracker) string {
	exercises := tr.Exercises()
	rows := make([][]string, 0, len(exercises))
	for i, ex := range exercises {
		marker := ""
		if i == tr.CurrentIndex() {
			marker = ">"
		}
		state := "PENDING"
		if ex.Done {
			state = "DONE"
		}
		rows = append(rows, []string{marker, strconv.Itoa(i + 1), state, ex.Name, ex.Path})
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("", "#", "STATE", "NAME", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Bold(true)
			case col == 0:
				return theme.Current.PaddingRight(1)
			case col == 2 && exercises[row].Done:
				return theme.Correct.PaddingRight(2)
			case col == 2:
				return theme.Pending.PaddingRight(2)
			case col == 4:
				return theme.Path
			}
			return cell
		}).
		String()
}
