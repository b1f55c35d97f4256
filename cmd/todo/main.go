package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/notexe/todo/internal/config"
	"github.com/notexe/todo/internal/logging"
	"github.com/notexe/todo/internal/repl"
	"github.com/notexe/todo/internal/task"
)

type flags struct {
	configPath string
	dbPath     string
	logLevel   string
	noColor    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f flags
	fs.StringVar(&f.configPath, "config", config.GetDefaultConfigPath(), "Path to configuration file")
	fs.StringVar(&f.dbPath, "db", "", "Path to the task database (overrides config)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	applyFlags(cfg, f)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger.Install()

	if err := cfg.EnsureDBDir(); err != nil {
		log.Error("cannot prepare database directory", "err", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	store, err := task.Open(cfg.DB.Path)
	if err != nil {
		log.Error("cannot open task database", "path", cfg.DB.Path, "err", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	replInstance, err := repl.NewREPL(store, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating REPL: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags overrides cfg with any command-line values that were set.
func applyFlags(cfg *config.Config, f flags) {
	if f.dbPath != "" {
		cfg.DB.Path = config.ExpandPath(f.dbPath)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.noColor {
		cfg.UI.ColoredOutput = false
	}
}
