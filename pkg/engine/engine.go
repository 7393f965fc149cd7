package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/homegenie/homegenie-mcp/pkg/energy"
	"github.com/homegenie/homegenie-mcp/pkg/hometoolbox"
	"github.com/homegenie/homegenie-mcp/pkg/tools/mcpserver"
	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/homegenie/homegenie-mcp/pkg/weather"
	"github.com/rs/zerolog"
)

// shutdownTimeout bounds graceful HTTP shutdown after cancellation.
const shutdownTimeout = 10 * time.Second

// Engine is the composition root: it assembles the generators, the tool
// registry, and the MCP server from configuration, then runs whichever
// transport the config selects.
type Engine struct {
	cfg  Config
	log  zerolog.Logger
	home *hometoolbox.HomeToolbox
	tb   *toolbox.ToolBox
	mcp  *mcpserver.Server
}

// New creates an Engine from the given configuration.
func New(cfg Config, log zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	home := hometoolbox.New(weather.NewGenerator(), energy.NewGenerator(), log)
	tb := home.Tools()

	return &Engine{
		cfg:  cfg,
		log:  log,
		home: home,
		tb:   tb,
		mcp:  mcpserver.New(hometoolbox.ServiceName, hometoolbox.ServiceVersion, tb),
	}, nil
}

// ToolNames returns the names of the tools the engine serves, sorted.
func (e *Engine) ToolNames() []string { return e.tb.Names() }

// Run serves until ctx is cancelled or the transport fails. On cancellation
// it shuts down cleanly and returns ctx's error.
func (e *Engine) Run(ctx context.Context) error {
	switch e.cfg.Mode {
	case ModeHTTP:
		return e.runHTTP(ctx)
	case ModeStdio:
		return e.runStdio(ctx)
	default:
		return fmt.Errorf("engine: unsupported mode %q", e.cfg.Mode)
	}
}

// runStdio serves MCP on stdin/stdout. Logs go to stderr, so they never
// corrupt the protocol stream.
func (e *Engine) runStdio(ctx context.Context) error {
	e.log.Info().Strs("tools", e.ToolNames()).Msg("serving MCP over stdio")

	return e.mcp.Serve(ctx, os.Stdin, os.Stdout)
}

func (e *Engine) runHTTP(ctx context.Context) error {
	addr := net.JoinHostPort(e.cfg.Host, strconv.Itoa(e.cfg.Port))

	srv := &http.Server{
		Addr:    addr,
		Handler: e.httpHandler(),
		// MCP sessions hold long-lived streams, so only the header read is
		// bounded.
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info().Str("addr", addr).Strs("tools", e.ToolNames()).Msg("serving MCP over HTTP")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("engine: http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("engine: shutdown: %w", err)
	}

	return ctx.Err()
}

// httpHandler mounts the MCP endpoint next to the plain status endpoints.
func (e *Engine) httpHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", e.mcp.Handler())
	mux.HandleFunc("/health", e.handleHealth)
	mux.HandleFunc("/", e.handleRoot)

	return mux
}

func (e *Engine) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(e.home.Health()); err != nil {
		e.log.Error().Err(err).Msg("write health response")
	}
}

// rootStatus is the service summary served at "/".
type rootStatus struct {
	Service string   `json:"service"`
	Status  string   `json:"status"`
	Tools   []string `json:"tools"`
	Version string   `json:"version"`
}

func (e *Engine) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rootStatus{
		Service: hometoolbox.ServiceName,
		Status:  "running",
		Tools:   e.ToolNames(),
		Version: hometoolbox.ServiceVersion,
	}); err != nil {
		e.log.Error().Err(err).Msg("write status response")
	}
}
