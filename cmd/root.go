package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitsect",
		Usage:   "Git history analysis for hotspots, coupling, and knowledge risk",
		Version: "1.0.0",
		Commands: []*cli.Command{
			MetricsCmd(),
			ImpactCmd(),
			HistoryCmd(),
			ChangesCmd(),
			CacheCmd(),
			PluginsCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.IntFlag{
			Name:  "max-commits",
			Usage: "Maximum number of commits to collect (0 = unlimited)",
		},
		&cli.IntFlag{
			Name:  "since-days",
			Usage: "Only collect commits from the last N days (0 = full history)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "use-gogit",
			Usage: "Collect history in-process instead of running the git tool",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Show debug output",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults and applies CLI
// flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply collection overrides from CLI
	if c.IsSet("max-commits") {
		cfg.Collection.MaxCommits = c.Int("max-commits")
	}
	if c.IsSet("since-days") {
		cfg.Collection.SinceDays = c.Int("since-days")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Collection.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Collection.Exclude = excludes
	}
	if c.Bool("use-gogit") {
		cfg.Collection.UseGoGit = true
	}
	if c.IsSet("limit") {
		cfg.Metrics.Limit = c.Int("limit")
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
