package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/config"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path. Overrides MOODLOG_DB_PATH and the config file." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd    `cmd:"" help:"Initialize moodlog storage."`
	Browse   cli.BrowseCmd  `cmd:"" help:"Browse and search your history." default:"1"`
	Add      cli.AddCmd     `cmd:"" help:"Record a new entry."`
	Edit     cli.EditCmd    `cmd:"" help:"Edit an existing entry."`
	Show     cli.ShowCmd    `cmd:"" help:"Show a single entry."`
	Delete   cli.DeleteCmd  `cmd:"" help:"Delete an entry."`
	History  cli.HistoryCmd `cmd:"" help:"List entries, newest first."`
	Stats    cli.StatsCmd   `cmd:"" help:"Show summary statistics."`
	Prefs    cli.PrefsCmd   `cmd:"" help:"Show or change preferences."`
	Export   cli.ExportCmd  `cmd:"" help:"Export the journal as JSON or YAML."`
	Import   cli.ImportCmd  `cmd:"" help:"Import a journal export."`
	Doctor   cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd cli.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A small mood journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting moodlog", "version", constants.Version, "db", cfg.DBPath, "command", kctx.Command())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := sqlite.NewStore(cfg.DBPath)
	defer store.Close()

	appCtx := cli.NewContext(ctx, store, cfg)
	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		stop()
		errors.Fatal(err)
	}
}
