package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/metrics"
)

// PluginsCmd returns the plugins command.
func PluginsCmd() *cli.Command {
	return &cli.Command{
		Name:   "plugins",
		Usage:  "List the registered metrics",
		Action: pluginsAction,
	}
}

func pluginsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	registry := metrics.NewRegistry(cfg.Metrics)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tDescription")
	for _, metric := range registry.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", metric.ID(), metric.Name(), metric.Description())
	}
	return tw.Flush()
}
