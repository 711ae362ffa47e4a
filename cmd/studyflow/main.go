package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/studyflowhq/studyflow/internal/cli"
	"github.com/studyflowhq/studyflow/internal/constants"
	errs "github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/overlap"
	"github.com/studyflowhq/studyflow/internal/scheduler"
	"github.com/studyflowhq/studyflow/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize studyflow storage."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Score  cli.ScoreCmd  `cmd:"" help:"Compute priority scores for candidate contents."`
	Plan   struct {
		Generate cli.PlanGenerateCmd `cmd:"" help:"Generate a day's study plan." default:"1"`
		Show     cli.PlanShowCmd     `cmd:"" help:"Show a day's timeline."`
		Reorder  cli.PlanReorderCmd  `cmd:"" help:"Move a timeline item and recompute times."`
		Clear    cli.PlanClearCmd    `cmd:"" help:"Clear a day's plans (recoverable)."`
		Restore  cli.PlanRestoreCmd  `cmd:"" help:"Restore a day's cleared plans."`
	} `cmd:"" help:"Generate and rework day plans."`
	Validate   cli.ValidateCmd `cmd:"" help:"Check a day's plans for time conflicts."`
	Commitment struct {
		Add   cli.CommitmentAddCmd   `cmd:"" help:"Add a fixed commitment."`
		List  cli.CommitmentListCmd  `cmd:"" help:"List fixed commitments." default:"1"`
		Clear cli.CommitmentClearCmd `cmd:"" help:"Clear a day's commitments."`
	} `cmd:"" help:"Manage fixed non-study commitments."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily study-plan scheduling and timeline reconciliation for tutoring academies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	dbPath := cli.ExpandPath(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(dbPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.NewSQLiteStore(dbPath)
	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Validator: overlap.New(),
		DBPath:    dbPath,
	}

	// Every command except init needs an already-initialized store.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errs.Fatal(err)
	}
}
