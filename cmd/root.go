package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gopherlings/internal/app"
	"github.com/abhisek/gopherlings/internal/config"
	"github.com/abhisek/gopherlings/internal/logging"
)

var (
	flags  config.Flags
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gopherlings",
	Short: "Small exercises to get you used to reading and writing Go",
	Long: `gopherlings walks you through a curriculum of small Go exercises.

Run without arguments to run the current exercise. Fix it until it passes,
and gopherlings moves on to the next one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Resolve(flags)
		l, err := logging.New(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurrent(cmd, "")
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.InfoFile, "info", "", "Path to the curriculum file (overrides "+config.EnvInfo+")")
	pf.StringVar(&flags.StateFile, "state-file", "", "Path to the progress file (overrides "+config.EnvState+")")
	pf.StringVar(&flags.StateDB, "state-db", "", "Keep progress in this SQLite database instead of a file (overrides "+config.EnvStateDB+")")
	pf.BoolVar(&flags.UseDB, "db", false, "Keep progress in the default SQLite database under $XDG_DATA_HOME/gopherlings")
	pf.StringVar(&flags.GoBin, "go", "", "Go toolchain binary (overrides "+config.EnvGo+")")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(versionCmd)
}

// openApp loads the curriculum and progress for the resolved config.
func openApp(cmd *cobra.Command) (*app.App, error) {
	a, err := app.Open(app.Options{
		Config: cfg,
		Logger: logger,
		Output: cmd.OutOrStdout(),
	})
	if err != nil {
		return nil, fmt.Errorf("open curriculum: %w", err)
	}
	return a, nil
}

// errExerciseFailed is returned when the current exercise does not pass.
var errExerciseFailed = errors.New("exercise failed")
