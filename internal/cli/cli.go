// Package cli implements the staffline command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/buildinfo"
	"github.com/matzehuels/staffline/pkg/cache"
	"github.com/matzehuels/staffline/pkg/observability"
	"github.com/matzehuels/staffline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "staffline"

	// defaultRedisAddr is used when the redis backend has no address configured.
	defaultRedisAddr = "localhost:6379"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends accepted in the [cache] config section.
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
	backendNone   = "none"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Staffline lays out notes on a musical staff",
		Long:         `Staffline is a CLI tool that positions notes on a five-line staff by pitch and elapsed time, and renders the result as SVG, PNG, PDF, JSON or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/staffline/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the logger to the command context
// and routes pipeline and cache events to debug logging.
func (c *CLI) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		var err error
		if path, err = configFile(); err != nil {
			c.Logger.Debug("no config location", "err", err)
		}
	}
	if path != "" {
		cfg, err := loadConfig(path, c.Logger)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend := c.Config.Cache.Backend
	if noCache {
		backend = backendNone
	}
	ch, err := c.newCache(ctx, backend)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache opens the configured cache backend wrapped with observability hooks.
func (c *CLI) newCache(ctx context.Context, backend string) (cache.Cache, error) {
	var (
		ch  cache.Cache
		err error
	)
	switch backend {
	case "", backendFile:
		dir, dirErr := cacheDir()
		if dirErr != nil {
			c.Logger.Warn("cache disabled", "err", dirErr)
			return cache.NewNullCache(), nil
		}
		ch, err = cache.NewFileCache(dir)
	case backendMemory:
		ch, err = cache.NewMemoryCache(c.Config.Cache.Size)
	case backendRedis:
		addr := c.Config.Cache.RedisAddr
		if addr == "" {
			addr = defaultRedisAddr
		}
		ch, err = cache.NewRedisCache(ctx, addr)
	case backendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be one of: file, memory, redis, none)", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", backend, err)
	}
	return cache.WithHooks(ch), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/staffline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configFile returns the config path using XDG standard
// (~/.config/staffline/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// isLayoutFile reports whether input is a computed layout rather than a score.
func isLayoutFile(input string) bool {
	return strings.HasSuffix(strings.ToLower(input), ".layout.json")
}

// basePath derives the base output path for rendered files.
// If output is empty, the input's extension (and a .layout suffix) is dropped.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
