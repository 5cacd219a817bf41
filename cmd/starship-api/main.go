// ABOUTME: Entry point for the starship-api server
// ABOUTME: Dispatches serve/init/seed/health subcommands and wires components

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/hangarbay/starship-api/internal/ai"
	"github.com/hangarbay/starship-api/internal/api"
	"github.com/hangarbay/starship-api/internal/auth"
	"github.com/hangarbay/starship-api/internal/config"
	"github.com/hangarbay/starship-api/internal/seed"
	"github.com/hangarbay/starship-api/internal/store"
	"github.com/hangarbay/starship-api/internal/swapi"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
      _                _     _
  ___| |_ __ _ _ __ __| |__ (_)_ __         __ _ _ __ (_)
 / __| __/ _' | '__/ __| '_ \| | '_ \ _____/ _' | '_ \| |
 \__ \ || (_| | |  \__ \ | | | | |_) |_____| (_| | |_) | |
 |___/\__\__,_|_|  |___/_| |_|_| .__/       \__,_| .__/|_|
                               |_|               |_|
`

// getConfigPath returns the path to the server config file.
// Priority: STARSHIP_CONFIG env var > XDG_CONFIG_HOME/starship-api/config.yaml
// > ~/.config/starship-api/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("STARSHIP_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "starship-api", "config.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: starship-api <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the API server")
		fmt.Println("  init     Create a new config file")
		fmt.Println("  seed     Seed roles, admin and the starship catalog, then exit")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "seed":
		err = runSeed(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	// Load configuration. A missing or weak JWT key fails here, before any
	// traffic is served.
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	fmt.Println()

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	tokens, err := auth.NewTokens([]byte(cfg.JWT.Key), cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expire)
	if err != nil {
		return fmt.Errorf("configuring tokens: %w", err)
	}

	// Baseline roles and the default admin are idempotent; run on every start.
	if err := seed.EnsureBaseline(ctx, s); err != nil {
		return fmt.Errorf("seeding baseline: %w", err)
	}

	// First-run catalog import. An unreachable upstream shouldn't keep the
	// server down, so failures are logged and the catalog stays empty.
	if err := seed.ImportStarships(ctx, s, swapi.NewClient(cfg.Swapi.URL)); err != nil {
		logger.Warn("starship import failed, starting with an empty catalog", "error", err)
	}

	aiClient := ai.NewClient(cfg.OpenAI.Key, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)

	mux := http.NewServeMux()
	api.New(s, tokens, aiClient).Routes(mux)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// runSeed migrates and seeds the database, then exits. Mirrors running the
// server's startup seeding without serving traffic.
func runSeed(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	if err := seed.EnsureBaseline(ctx, s); err != nil {
		return fmt.Errorf("seeding baseline: %w", err)
	}

	if err := seed.ImportStarships(ctx, s, swapi.NewClient(cfg.Swapi.URL)); err != nil {
		return fmt.Errorf("importing starships: %w", err)
	}

	fmt.Println("Seeding finished")
	return nil
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists: %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configContent := `# starship-api configuration

server:
  http_addr: "localhost:8080"

database:
  path: "starship.db"

jwt:
  key: "${STARSHIP_JWT_KEY}"   # at least 32 bytes
  issuer: "starship-api"
  audience: "starship-ui"
  expire: "60m"

openai:
  key: "${OPENAI_API_KEY}"
  model: "gpt-4o-mini"

swapi:
  url: "https://swapi.info"

logging:
  level: "info"
  format: "text"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created config: %s\n", configPath)
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
