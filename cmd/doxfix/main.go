package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/doxfix/fix"
	"github.com/fwojciec/doxfix/fs"
	"github.com/fwojciec/doxfix/fsnotify"
	"github.com/fwojciec/doxfix/goquery"
	dfslog "github.com/fwojciec/doxfix/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPaths are JSON files flags are read from, first match wins.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{"doxfix.json", "~/.config/doxfix/config.json"},
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("doxfix"),
		kong.Description("Fix spacing artifacts in Doxygen-generated HTML documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'doxfix --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	name := strings.Fields(kongCtx.Command())[0]

	var tree *TreeFlags
	switch name {
	case "fix":
		tree = &cli.Fix.TreeFlags
	case "check":
		tree = &cli.Check.TreeFlags
	case "watch":
		tree = &cli.Watch.TreeFlags
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if tree != nil {
		if err := wire(deps, tree); err != nil {
			return err
		}
		if name == "watch" {
			deps.Watcher = fsnotify.NewWatcher(tree.Dir,
				fsnotify.WithFilter(deps.Pages.IsPage),
				fsnotify.WithSkipDirs(tree.SkipDir...),
				fsnotify.WithDebounce(cli.Watch.Debounce),
				fsnotify.WithLogger(deps.Logger),
			)
		}
	}

	return kongCtx.Run(deps)
}

// wire builds the store, manifest and runner for a documentation directory.
func wire(deps *Dependencies, tree *TreeFlags) error {
	deps.Pages = fs.NewPageStore(tree.Dir,
		fs.WithExtensions(tree.Ext...),
		fs.WithSkipDirs(tree.SkipDir...),
	)
	deps.Store = dfslog.NewLoggingStore(deps.Pages, deps.Logger)

	manifestPath := tree.Manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(tree.Dir, manifestPath)
	}
	manifest, err := fs.OpenManifest(manifestPath)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Delete the manifest to rebuild it on the next run")
		return fmt.Errorf("failed to open manifest at %q: %w", manifestPath, err)
	}

	deps.Runner = &fix.Runner{
		Store:       deps.Store,
		Fixer:       dfslog.NewLoggingFixer(goquery.NewFixer(), deps.Logger),
		Detector:    goquery.NewDetector(),
		Manifest:    manifest,
		Concurrency: tree.Concurrency,
		Force:       tree.Force,
		All:         tree.All,
	}
	return nil
}
