package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/cache"
	"github.com/masmgr/gitsect/internal/console"
)

// CacheCmd returns the cache command group.
func CacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the history cache",
		Subcommands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove all cached history",
				Action: cacheClearAction,
			},
			{
				Name:   "dir",
				Usage:  "Print the cache directory",
				Action: cacheDirAction,
			},
		},
	}
}

func cacheClearAction(c *cli.Context) error {
	store, err := cacheStore(c)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Printf("Cleared cache at %s\n", store.Dir())
	return nil
}

func cacheDirAction(c *cli.Context) error {
	store, err := cacheStore(c)
	if err != nil {
		return err
	}
	fmt.Println(store.Dir())
	return nil
}

func cacheStore(c *cli.Context) (*cache.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return openStore(cfg, console.Default(false))
}
