// Package cmd implements the CLI command structure for tasktrack.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tasktrack/internal/config"
	"github.com/nibzard/tasktrack/internal/logging"
	"github.com/nibzard/tasktrack/internal/menu"
	"github.com/nibzard/tasktrack/internal/todo"
	"github.com/nibzard/tasktrack/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

const defaultTailLines = 20

// streams holds the standard streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the tasktrack CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, remainingArgs, s)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, s)
	case "config":
		return configCommand(cws, remainingArgs, s)
	case "logs":
		return logsCommand(cfg, remainingArgs, s)
	case "version":
		return versionCommand(s.out)
	case "help":
		printUsage(fs, s.out)
		return nil
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the numbered text menu over a fresh store.
func menuCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("tasktrack menu", flag.ContinueOnError)
	fs.SetOutput(s.err)
	demo := fs.Bool("demo", false, "Start with sample tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session, err := openSession(cfg, s.err)
	if err != nil {
		return err
	}
	defer session.Close()

	store := todo.NewStore()
	if *demo {
		if err := seedDemo(store); err != nil {
			return fmt.Errorf("seeding demo tasks: %w", err)
		}
	}

	session.Debug("menu started", "sort", cfg.DefaultSort, "confirm_delete", cfg.ConfirmDelete, "tasks", store.Len())
	m := menu.New(store, s.in, s.out, menu.Options{
		Sort:          cfg.SortKey(),
		ConfirmDelete: cfg.ConfirmDelete,
		Styles:        ui.NewStyles(ui.NewRenderer(s.out, cfg.Color)),
		Log:           session,
	})
	return m.Run(ctx)
}

// tuiCommand launches the task board.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("tasktrack tui", flag.ContinueOnError)
	fs.SetOutput(s.err)
	demo := fs.Bool("demo", false, "Start with sample tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session, err := openSession(cfg, s.err)
	if err != nil {
		return err
	}
	defer session.Close()

	store := todo.NewStore()
	if *demo {
		if err := seedDemo(store); err != nil {
			return fmt.Errorf("seeding demo tasks: %w", err)
		}
	}

	return ui.RunBoard(ctx, store, ui.BoardOptions{
		Sort:   cfg.SortKey(),
		Styles: ui.NewStyles(ui.NewRenderer(os.Stdout, cfg.Color)),
		Log:    session,
	})
}

// configCommand prints the effective configuration with the source of
// each value, or an example config file.
func configCommand(cws *config.ConfigWithSources, args []string, s streams) error {
	fs := flag.NewFlagSet("tasktrack config", flag.ContinueOnError)
	fs.SetOutput(s.err)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(s.out, config.ExampleConfig())
		return nil
	}
	fmt.Fprint(s.out, cws.Describe())
	return nil
}

// logsCommand prints the end of the latest session log for the working
// directory.
func logsCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("tasktrack logs", flag.ContinueOnError)
	fs.SetOutput(s.err)
	n := fs.Int("n", defaultTailLines, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(s.out, "No log files found.")
		return nil
	}

	fmt.Fprintf(s.out, "Log: %s\n\n", logPath)
	return logging.TailLog(s.out, logPath, *n)
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasktrack version %s\n", Version)
	return nil
}

// openSession starts logging to w and, when enabled, to a session file.
func openSession(cfg *config.Config, w io.Writer) (*logging.Session, error) {
	opts := logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		Output:     w,
		WorkDir:    cfg.WorkDir,
	}
	if cfg.LogFile {
		opts.FileDir = cfg.LogDir
	}
	session, err := logging.NewSession(opts)
	if err != nil {
		return nil, fmt.Errorf("starting log session: %w", err)
	}
	return session, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasktrack - an in-memory task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktrack [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu          Interactive numbered menu (default command)")
	fmt.Fprintln(w, "  tui           Launch the terminal task board")
	fmt.Fprintln(w, "  config        Show effective configuration and value sources")
	fmt.Fprintln(w, "  logs          Show the latest session log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Menu and TUI Options:")
	fmt.Fprintln(w, "  -demo")
	fmt.Fprintln(w, "        Start with sample tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintf(w, "        Number of lines to show, 0 for all (default %d)\n", defaultTailLines)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks live in memory only and are lost when the program exits.")
}
