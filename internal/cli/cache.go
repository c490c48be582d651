package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts and rendered files",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend == "" {
				backend = c.Config.Cache.Backend
			}
			ch, err := c.newCache(cmd.Context(), backend)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Nothing to clear for the %s backend", backend)
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			if backend == "" || backend == backendFile {
				if dir, err := cacheDir(); err == nil {
					printDetail("Directory: %s", dir)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "cache backend to clear: file, memory, redis (default: from config)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory and config file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			if c.configPath != "" {
				fmt.Println(c.configPath)
			} else if cfg, err := configFile(); err == nil {
				fmt.Println(cfg)
			}
			return nil
		},
	}
}
