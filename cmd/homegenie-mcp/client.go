package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/homegenie/homegenie-mcp/pkg/tools/mcpclient"
)

// connectClient reaches a HomeGenie MCP server. With a URL it connects over
// streamable HTTP; otherwise it spawns this binary as a stdio server.
func connectClient(ctx context.Context, url string) (*mcpclient.Client, error) {
	if url != "" {
		return mcpclient.NewHTTP(ctx, url)
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return mcpclient.New(ctx, exe, "-mode", "stdio")
}

func runCall(toolName, args, url, envFile string) error {
	if toolName == "" {
		return fmt.Errorf("call: -tool is required")
	}

	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := connectClient(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out, err := client.CallTool(ctx, toolName, json.RawMessage(args))
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

func runTools(url, envFile string) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := connectClient(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return err
	}

	for _, t := range tools {
		fmt.Printf("%s\t%s\n", t.Name, t.Description)
	}

	return nil
}
