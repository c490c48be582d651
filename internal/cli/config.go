package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/pipeline"
)

// Config is the optional user configuration file. Command-line flags take
// precedence over it; it takes precedence over built-in defaults.
type Config struct {
	Staff  StaffConfig  `toml:"staff"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// StaffConfig sets the default layout geometry.
type StaffConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig sets default render options.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Labels  bool     `toml:"labels"`
	Title   bool     `toml:"title"`
	Scale   float64  `toml:"scale"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`    // file (default), memory, redis, none
	RedisAddr string `toml:"redis_addr"` // host:port for the redis backend
	Size      int    `toml:"size"`       // entry bound for the memory backend
}

func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: backendFile},
	}
}

// loadConfig decodes the TOML file at path. A missing file yields the
// defaults; unknown keys are logged as warnings.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown config keys", "path", path, "keys", strings.Join(keys, ", "))
	}
	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// applyLayoutConfig sets the config's staff size as the fallback geometry.
// Flags and a score's own [staff] table both take precedence over it.
func (c *CLI) applyLayoutConfig(opts *pipeline.Options) {
	opts.DefaultWidth = c.Config.Staff.Width
	opts.DefaultHeight = c.Config.Staff.Height
}

// applyRenderConfig fills render options from config where no flag was given.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *pipeline.Options) {
	c.applyLayoutConfig(opts)
	r := c.Config.Render
	if !cmd.Flags().Changed("format") && len(r.Formats) > 0 {
		opts.Formats = r.Formats
	}
	if !cmd.Flags().Changed("labels") && r.Labels {
		opts.Labels = true
	}
	if !cmd.Flags().Changed("title") && r.Title {
		opts.Title = true
	}
	if !cmd.Flags().Changed("scale") && r.Scale > 0 {
		opts.Scale = r.Scale
	}
}
