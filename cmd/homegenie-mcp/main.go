package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/homegenie/homegenie-mcp/pkg/engine"
	"github.com/homegenie/homegenie-mcp/pkg/hometoolbox"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "call":
			callCmd := flag.NewFlagSet("call", flag.ExitOnError)
			callCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: homegenie-mcp call -tool <name> [flags]\n\nCall a tool on a HomeGenie MCP server and print the result.\n\nFlags:\n")
				callCmd.PrintDefaults()
			}
			toolName := callCmd.String("tool", "", "tool to call (required)")
			args := callCmd.String("args", "{}", "tool arguments as JSON")
			url := callCmd.String("url", "", "streamable HTTP endpoint (default: spawn a stdio server)")
			envFile := callCmd.String("env", ".env", "path to .env file (ignored if missing)")
			_ = callCmd.Parse(os.Args[2:])

			if err := runCall(*toolName, *args, *url, *envFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "tools":
			toolsCmd := flag.NewFlagSet("tools", flag.ExitOnError)
			toolsCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: homegenie-mcp tools [flags]\n\nList the tools a HomeGenie MCP server exposes.\n\nFlags:\n")
				toolsCmd.PrintDefaults()
			}
			url := toolsCmd.String("url", "", "streamable HTTP endpoint (default: spawn a stdio server)")
			envFile := toolsCmd.String("env", ".env", "path to .env file (ignored if missing)")
			_ = toolsCmd.Parse(os.Args[2:])

			if err := runTools(*url, *envFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: homegenie-mcp [flags]\n       homegenie-mcp <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  call   Call a tool on a HomeGenie MCP server and print the result\n  tools  List the tools a HomeGenie MCP server exposes\n")
	}

	configPath := flag.String("config", "", "path to configuration file (optional)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	mode := flag.String("mode", "", "serving mode: stdio or http (overrides MODE)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n💡 For production, set HOST=0.0.0.0 environment variable\n")
		os.Exit(1)
	}
}

func run(configPath, modeOverride string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Config resolution: defaults → optional YAML file → environment → flag.
	cfg := engine.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = engine.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	if err := cfg.FromEnv(); err != nil {
		return err
	}

	if modeOverride != "" {
		cfg.Mode = engine.Mode(modeOverride)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("service", hometoolbox.ServiceName).
		Str("version", hometoolbox.ServiceVersion).
		Str("mode", string(cfg.Mode)).
		Strs("tools", eng.ToolNames()).
		Msg("starting")

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("server stopped")

	return nil
}
