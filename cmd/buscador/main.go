// Package main is the buscador CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/qosqo/buscador/internal/analyzer"
	"github.com/qosqo/buscador/internal/cli"
	"github.com/qosqo/buscador/internal/config"
	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/ranking"
	"github.com/qosqo/buscador/internal/refdata"
	"github.com/qosqo/buscador/internal/search"
	"github.com/qosqo/buscador/internal/server"
	"github.com/qosqo/buscador/internal/storage"
	"github.com/qosqo/buscador/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/buscador/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default config falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func main() {
	// Deployment secrets (e.g. the Postgres DSN) come from the environment.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "analyze":
		runAnalyze()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("buscador version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds everything the server and the direct-access commands need.
type components struct {
	Store    storage.ListingStore
	RefStore *refdata.Store
	Engine   *search.Engine
}

func (c *components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	var store storage.ListingStore
	var err error
	switch cfg.Storage.Driver {
	case "postgres":
		store, err = storage.NewPostgresStore(cfg.Storage.PostgresDSN)
	case "sqlite", "":
		store, err = storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open listing store: %w", err)
	}

	tables, err := refdata.LoadTables(cfg.Data.Dir)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	refStore := refdata.NewStore(tables, cfg.Data.Dir, refdata.WithLogger(logger))

	engine := search.NewEngine(
		store,
		analyzer.New(refStore, analyzer.WithLogger(logger)),
		ranking.NewRanker(&cfg.Scoring),
		cfg.Search,
		logger,
	)
	return &components{Store: store, RefStore: refStore, Engine: engine}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Data.WatchReload && cfg.Data.Dir != "" {
		if err := comps.RefStore.Watch(watchCtx); err != nil {
			logger.Fatal("Failed to watch reference data", zap.Error(err))
		}
		logger.Info("watching reference data", zap.String("dir", cfg.Data.Dir))
	}

	srv := server.NewServer(comps.Engine, comps.Store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseOutputFormat(name string) (cli.SearchOutputFormat, error) {
	switch name {
	case "text":
		return cli.OutputText, nil
	case "compact":
		return cli.OutputCompact, nil
	case "json":
		return cli.OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", name)
}

func runSearch() {
	args := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	limit := fs.Int("limit", 10, "number of results")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(args)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{Query: queryStr, Limit: *limit}

	var response *models.SearchResponse
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, searchQuery)
	} else {
		response, err = searchDirect(*configPath, searchQuery)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(configPath string, query *models.SearchQuery) (*models.SearchResponse, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer comps.Close()

	return comps.Engine.Search(context.Background(), query)
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runAnalyze() {
	args := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		fmt.Fprintf(fs.Output(), "Usage: buscador analyze [flags] <query>\n\n")
		fs.PrintDefaults()
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	tables, err := refdata.LoadTables(cfg.Data.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load reference data: %v\n", err)
		os.Exit(1)
	}
	a := analyzer.New(refdata.NewStore(tables, cfg.Data.Dir))
	if err := cli.WriteIntent(os.Stdout, a.Analyze(queryStr), format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	var count int64
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/status")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		var status struct {
			Listings int64 `json:"listings"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		count = status.Listings
	} else {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		comps, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer comps.Close()
		count, err = comps.Store.CountListings(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count listings failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("listings: %d\n", count)
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: buscador search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  buscador search busco trabajo de cocinero en wanchaq
  buscador search "departamento en alquiler cusco s/ 800 a 1200"
  buscador search --limit 20 --output json moto lineal
`)
}

func printUsage() {
	fmt.Print(`buscador - query understanding and relevance ranking for classifieds

Usage:
  buscador server  [flags]           Start the HTTP API server
  buscador search  [flags] <query>   Search listings
  buscador analyze [flags] <query>   Show the structured intent for a query
  buscador status  [flags]           Show listing counts
  buscador version                   Print version
  buscador help                      Show this help
`)
}
