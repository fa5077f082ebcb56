package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/github-resume/internal/cache"
	"github.com/jonathan/github-resume/internal/config"
	"github.com/jonathan/github-resume/internal/github"
	"github.com/jonathan/github-resume/internal/observability"
	"github.com/jonathan/github-resume/internal/session"
	"github.com/jonathan/github-resume/internal/share"
	"github.com/jonathan/github-resume/internal/types"
)

// noStateMessage is printed (or returned) when neither a link nor the cache holds a résumé.
const noStateMessage = "no résumé state found"

// app bundles the collaborators every command works with.
type app struct {
	cfg     config.Config
	codec   *share.Codec
	storage cache.ClosableStorage
	cache   *cache.Cache
	printer *observability.Printer
	out     io.Writer
	logger  *log.Logger
}

// resolveConfig layers flags over the config file over the environment.
func resolveConfig(flags config.Config, configPath string) (config.Config, error) {
	base := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
		flags.Verbose = flags.Verbose || fileCfg.Verbose
	}

	merged := flags.MergeWithDefaults(base)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// rootFlags collects the persistent flags into a Config.
func rootFlags() config.Config {
	return config.Config{
		ShareOrigin:  rootOrigin,
		CacheBackend: rootCacheBackend,
		CacheDSN:     rootCacheDSN,
		Verbose:      rootVerbose,
	}
}

// openApp resolves the configuration and opens the cache storage.
func openApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := resolveConfig(rootFlags(), rootConfigPath)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, out)
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	storage, err := cache.OpenStorage(ctx, cfg.CacheBackend, cfg.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Verbose {
		logger.Printf("[CONFIG] Cache backend: %s, share origin: %s", backendName(cfg.CacheBackend), originName(cfg.ShareOrigin))
	}

	cacheConfig := cache.DefaultConfig()
	cacheConfig.Logger = logger

	return &app{
		cfg:     cfg,
		codec:   share.NewCodec(cfg.ShareOrigin, logger),
		storage: storage,
		cache:   cache.New(storage, cacheConfig),
		printer: observability.NewPrinter(os.Stderr),
		out:     out,
		logger:  logger,
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Printf("[CACHE] Error closing storage: %v", err)
	}
}

// restore recovers the résumé from a link (or raw query) first, then the cache.
func (a *app) restore(ctx context.Context, source string) (*types.ResumeData, session.Source) {
	data, src := session.Restore(ctx, source, a.codec, a.cache)
	if a.cfg.Verbose {
		a.logger.Printf("[SESSION] Restored state from %s", src)
	}
	return data, src
}

// githubClient builds a client from the configured token and API URL.
func (a *app) githubClient() *github.Client {
	opts := github.DefaultOptions()
	opts.Token = a.cfg.GithubToken
	if a.cfg.GithubAPIURL != "" {
		opts.BaseURL = a.cfg.GithubAPIURL
	}
	return github.NewClient(opts)
}

func backendName(backend string) string {
	if backend == "" {
		return cache.BackendSQLite
	}
	return backend
}

func originName(origin string) string {
	if origin == "" {
		return share.DefaultOrigin
	}
	return origin
}

// firstArg returns the optional positional link argument.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
