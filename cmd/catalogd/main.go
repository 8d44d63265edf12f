// Package main is the catalogd CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tajrlabs/catalog/internal/cache"
	"github.com/tajrlabs/catalog/internal/config"
	"github.com/tajrlabs/catalog/internal/models"
	"github.com/tajrlabs/catalog/internal/parser"
	"github.com/tajrlabs/catalog/internal/reader"
	"github.com/tajrlabs/catalog/internal/server"
	"github.com/tajrlabs/catalog/internal/source"
	"github.com/tajrlabs/catalog/internal/translate"
	"github.com/tajrlabs/catalog/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/catalog/config.yaml"
	tokenEnvVar       = "ITEMS_API_TOKEN"
)

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// Missing .env is fine; the token can come from the real environment.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "read":
		runRead()
	case "docs":
		runDocs()
	case "version", "--version", "-v":
		fmt.Printf("catalogd version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds the wired read pipeline.
type components struct {
	Store      cache.Store
	Translator translate.Translator
	Reader     *reader.Reader
}

func (c *components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	store, err := cache.NewSQLiteStore(cfg.Cache.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	var translator translate.Translator = translate.Noop{}
	if cfg.Translator.SheetPath != "" {
		translator = translate.NewSheetTranslator(cfg.Translator.SheetPath, logger)
	}

	src := source.NewHTTPSource(cfg.Source.BaseURL, os.Getenv(tokenEnvVar), cfg.Source.Timeout())
	rdr := reader.New(src, store, parser.New(translator), reader.WithLogger(logger))

	return &components{Store: store, Translator: translator, Reader: rdr}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
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

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Translator.Watch {
		if sheet, ok := comps.Translator.(*translate.SheetTranslator); ok {
			go func() {
				if err := sheet.Watch(watchCtx); err != nil {
					logger.Warn("translation sheet watch stopped", zap.Error(err))
				}
			}()
		}
	}

	srv := server.NewServer(comps.Reader, &cfg.Server, &cfg.Read, logger)
	go func() {
		if err := srv.Start(); err != nil {
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

func runRead() {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	cached := fs.Bool("cached", false, "read from the local cache instead of the source")
	allowUncategorized := fs.Bool("allow-uncategorized", false, "keep records no domain tier matched")
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
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

	res, err := comps.Reader.ReadAttributes(context.Background(), reader.Options{
		Cached:                 *cached,
		AllowUncategorized:     *allowUncategorized || cfg.Read.AllowUncategorized,
		LiveVendorsOnly:        cfg.Source.LiveVendorsOnly,
		LiveVendorsOnlyTesting: cfg.Source.LiveVendorsOnlyTesting,
	})
	if err != nil {
		logger.Fatal("Read failed", zap.Error(err))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			logger.Fatal("Failed to encode result", zap.Error(err))
		}
		return
	}

	fmt.Printf("read %s: %d items, %d splits (from_cache=%v, parse_failures=%d, uncategorized=%d)\n",
		res.ReadID, len(res.Attrs), len(res.Splits), res.FromCache, res.ParseFailures, res.Uncategorized)
	for _, split := range res.Splits {
		fmt.Printf("  %-14s %-30s %d items\n", split.Category, split.VendorName.EN, split.Len())
	}
}

func runDocs() {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	cached := fs.Bool("cached", false, "read from the local cache instead of the source")
	lang := fs.String("lang", models.LangEN, "document language (en or ar)")
	_ = fs.Parse(os.Args[2:])

	if *lang != models.LangEN && *lang != models.LangAR {
		fmt.Println("lang must be en or ar")
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Println("Usage: catalogd docs [flags] <item-id>")
		os.Exit(1)
	}
	itemID := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
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

	res, err := comps.Reader.ReadItems(context.Background(), reader.Options{
		Cached:                 *cached,
		AllowUncategorized:     cfg.Read.AllowUncategorized,
		LiveVendorsOnlyTesting: cfg.Source.LiveVendorsOnlyTesting,
	})
	if err != nil {
		logger.Fatal("Read failed", zap.Error(err))
	}

	for _, item := range res.Items {
		if item.ID != itemID {
			continue
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(item.ToDocs(*lang)); err != nil {
			logger.Fatal("Failed to encode docs", zap.Error(err))
		}
		return
	}
	fmt.Printf("item %s not found\n", itemID)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`catalogd - multilingual product catalog reader

Usage:
  catalogd server [-config path] [-debug]           start the HTTP API server
  catalogd read   [-config path] [-cached] [-json]  run one read cycle and print the result
  catalogd docs   [-config path] [-lang en|ar] <id> print an item's grouped documents
  catalogd version                                  print version

The upstream API bearer token is read from the ` + tokenEnvVar + ` environment
variable (a .env file in the working directory is loaded when present).`)
}
