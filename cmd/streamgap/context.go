package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"streamgap/internal/api"
	"streamgap/internal/cache"
	"streamgap/internal/catalog"
	"streamgap/internal/config"
	"streamgap/internal/join"
	"streamgap/internal/logging"
	"streamgap/internal/providers"
	"streamgap/internal/requests"
	"streamgap/internal/tmdb"
)

const (
	annotationSkipConfig      = "skipConfigLoad"
	annotationSkipCredentials = "skipCredentials"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

// ensureConfig loads the configuration once per invocation. Commands
// annotated with skipCredentials accept a config without API keys.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		load := config.Load
		lenient := hasAnnotation(cmd, annotationSkipCredentials)
		if lenient {
			load = config.LoadUnvalidated
		}
		cfg, resolved, exists, err := load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if lenient {
			if err := cfg.ValidateSettings(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig(cmd)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr(), logging.NewRunID())
	})
	return c.logger, c.loggerErr
}

// services bundles everything a reporting command needs for one run.
type services struct {
	cfg     *config.Config
	logger  *slog.Logger
	cache   *cache.Cache
	tmdb    *tmdb.Client
	catalog *catalog.Catalog
	media   *api.MediaService
}

func (s *services) Close() error {
	if s == nil {
		return nil
	}
	return s.cache.Close()
}

func (c *commandContext) openCache(cmd *cobra.Command) (*config.Config, *cache.Cache, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.Open(commandContextOrBackground(cmd), cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return cfg, store, nil
}

func (c *commandContext) newTMDBClient(cfg *config.Config) (*tmdb.Client, error) {
	return tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithRegion(cfg.TMDB.Region),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDBTimeout()}),
		tmdb.WithRequestTimeout(cfg.TMDBTimeout()),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDBRateWindow()),
		tmdb.WithRetries(uint(cfg.TMDB.MaxRetries), 500*time.Millisecond),
	)
}

func (c *commandContext) openServices(cmd *cobra.Command) (*services, error) {
	cfg, store, err := c.openCache(cmd)
	if err != nil {
		return nil, err
	}
	logger := c.logger

	client, err := c.newTMDBClient(cfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("tmdb client: %w", err)
	}
	ombi, err := requests.New(cfg.Ombi.BaseURL, cfg.Ombi.APIKey,
		requests.WithHTTPClient(&http.Client{Timeout: cfg.OmbiTimeout()}),
		requests.WithLogger(logger),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ombi client: %w", err)
	}

	registry := providers.MustDefaultRegistry()
	registry.ReportConflicts(logger)

	cat := catalog.New(client, store, cfg.CacheTTL(), catalog.WithLogger(logger))
	joiner := join.New(cat, providers.NewResolver(registry, cfg.TMDB.ImageBaseURL),
		join.WithWorkers(cfg.Join.Workers),
		join.WithLogger(logger),
	)

	return &services{
		cfg:     cfg,
		logger:  logger,
		cache:   store,
		tmdb:    client,
		catalog: cat,
		media:   api.NewMediaService(ombi, joiner, registry, logger),
	}, nil
}

func (c *commandContext) withServices(cmd *cobra.Command, fn func(*services) error) error {
	svc, err := c.openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

// withCacheLock serializes cache maintenance across processes. The memory
// backend has nothing to protect.
func withCacheLock(cfg *config.Config, fn func() error) error {
	if cfg.Cache.Backend != config.CacheBackendSQLite {
		return fn()
	}
	lock := flock.New(cfg.Cache.Path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return errors.New("another streamgap cache operation is already running")
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func commandContextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	return hasAnnotation(cmd, annotationSkipConfig)
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
