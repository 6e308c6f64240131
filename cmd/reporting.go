package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/output"
)

func writeMetricReport(c *cli.Context, report *output.MetricReport) error {
	opts := OutputOptions(c)
	writer := output.NewMetricReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeImpactReport(c *cli.Context, report *output.ImpactReport) error {
	opts := OutputOptions(c)
	writer := output.NewImpactReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeHistoryReport(c *cli.Context, report *output.HistoryReport) error {
	opts := OutputOptions(c)
	writer := output.NewHistoryReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeChangesReport(c *cli.Context, report *output.ChangesReport) error {
	opts := OutputOptions(c)
	writer := output.NewChangesReportWriter(opts.Format)
	return writer.Write(report, opts)
}
