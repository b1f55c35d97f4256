// Command mcp-todo provides an MCP server for to-do list management.
//
// This server provides tools for creating, listing, updating and deleting
// tasks stored in a SQLite database. Listings are ordered by date, then
// time, then priority.
//
// Usage:
//
//	./mcp-todo          # Start MCP server (stdio)
//	./mcp-todo --help   # Show help
//
// Environment:
//
//	TODO_DB_PATH    Path to SQLite database (default: ~/.todo/tasks.db)
//	TODO_LOG_LEVEL  Log level for stderr diagnostics (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/todo/internal/config"
	"github.com/notexe/todo/internal/logging"
	"github.com/notexe/todo/internal/task"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so the log file and database are closed on every path.
func run() int {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return 0
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	// stdout carries the MCP protocol, so logs must stay on stderr or a file.
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Close()
	logger.Install()

	if err := cfg.EnsureDBDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		return 1
	}

	store, err := task.Open(cfg.DB.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	s := task.NewServer(store)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Println(`MCP Todo Server - To-do list management via MCP protocol

USAGE:
    mcp-todo          Start MCP server (communicates via stdio)
    mcp-todo --help   Show this help

ENVIRONMENT:
    TODO_DB_PATH      Path to SQLite database file
                      Default: ~/.todo/tasks.db
    TODO_LOG_LEVEL    debug, info, warn or error (default: warn)

CONFIGURATION:
    Settings are read from ~/.todo/config.yaml when present.

TOOLS:
    add_task          Add a task (title, description, date, time, priority, has_alarm)
    list_tasks        List tasks ordered by date, time, then priority
    get_task          Get one task by ID
    update_task       Replace every field of a task
    delete_task       Delete a task permanently`)
}
