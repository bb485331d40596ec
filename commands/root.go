package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/config"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

var options = struct {
	debug   bool
	envfile string
}{
	debug:   false,
	envfile: ".env",
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := &cobra.Command{
		Use:           "alegra-sharepoint-sync",
		Short:         "Mirrors Alegra accounting records into SharePoint lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&options.debug, "debug", false, "enables debug logging")
	root.PersistentFlags().StringVar(&options.envfile, "env", ".env", "path to the .env configuration file")

	root.AddCommand(invoicesCmd())
	root.AddCommand(paymentsCmd())
	root.AddCommand(billsCmd())
	root.AddCommand(accountsCmd())
	root.AddCommand(itemsCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(runCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n   ERROR: %v\n\n", err)
		return 1
	}

	return 0
}

// newLogger builds the per-job logger: everything goes to a timestamped file
// under logs/, the console only shows warnings and errors unless --debug is
// set. The returned closer releases the log file and must be called when the
// job finishes.
func newLogger(job string) (zerolog.Logger, string, func() error, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return zerolog.Nop(), "", nil, fmt.Errorf("creating logs directory: %w", err)
	}

	logfile := filepath.Join("logs", fmt.Sprintf("%v_%v.log", job, time.Now().Format("20060102_150405")))

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), "", nil, fmt.Errorf("opening log file: %w", err)
	}

	file := zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}

	consoleLevel := zerolog.WarnLevel
	if options.debug {
		consoleLevel = zerolog.DebugLevel
	}

	console := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{
			Writer: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"},
		},
		Level: consoleLevel,
	}

	level := zerolog.InfoLevel
	if options.debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.MultiLevelWriter(file, console)).Level(level).With().Timestamp().Logger()

	return log, logfile, f.Close, nil
}

// setup loads the configuration and builds the API clients shared by all
// jobs.
func setup(cmd *cobra.Command, log zerolog.Logger) (*config.Config, *alegra.Client, *sharepoint.Client, error) {
	cfg, err := config.Load(options.envfile)
	if err != nil {
		return nil, nil, nil, err
	}

	source := alegra.NewClient(cfg.AlegraEmail, cfg.AlegraToken, log)

	destination, err := sharepoint.NewClient(cmd.Context(), cfg.SharePoint, cfg.SiteURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, source, destination, nil
}

// yesterday is the date the daily jobs pull from Alegra.
func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}
