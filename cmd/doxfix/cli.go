package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/doxfix"
	"github.com/fwojciec/doxfix/fix"
	"github.com/fwojciec/doxfix/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Pages   *fs.PageStore
	Store   doxfix.PageStore
	Runner  *fix.Runner
	Watcher doxfix.Watcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool            `short:"v" env:"DOXFIX_VERBOSE" help:"Enable debug logging"`
	Config  kong.ConfigFlag `help:"Read flags from a JSON config file"`

	Fix   FixCmd   `cmd:"" help:"Fix all pages in a Doxygen HTML directory"`
	Check CheckCmd `cmd:"" help:"Report pages that need fixing; fails if there are any"`
	Watch WatchCmd `cmd:"" help:"Fix pages, then keep fixing them as Doxygen regenerates them"`
}

// TreeFlags are shared by every command operating on a documentation directory.
type TreeFlags struct {
	Dir         string   `arg:"" type:"existingdir" help:"Doxygen HTML output directory"`
	Ext         []string `name:"ext" default:".html" env:"DOXFIX_EXT" help:"Page file extension (repeatable)"`
	SkipDir     []string `name:"skip-dir" default:"search" env:"DOXFIX_SKIP_DIR" help:"Directory name not to descend into (repeatable)"`
	Concurrency int      `short:"c" default:"4" env:"DOXFIX_CONCURRENCY" help:"Pages processed in parallel"`
	Force       bool     `short:"f" help:"Fix pages the manifest records as already fixed"`
	All         bool     `help:"Fix pages not detected as Doxygen output"`
	Manifest    string   `default:".doxfix.json" env:"DOXFIX_MANIFEST" help:"Manifest file, relative to the directory"`
}

// FixCmd is the "fix" subcommand.
type FixCmd struct {
	TreeFlags `embed:""`

	DryRun bool `short:"n" name:"dry-run" help:"Show what would change without writing"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	TreeFlags `embed:""`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	TreeFlags `embed:""`

	Debounce time.Duration `default:"300ms" env:"DOXFIX_DEBOUNCE" help:"Quiet period before fixing changed pages"`
}
