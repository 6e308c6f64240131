package output

import (
	"time"

	"github.com/masmgr/gitsect/internal/git"
	"github.com/masmgr/gitsect/internal/metrics"
)

// Compile-time interface conformance checks.
var (
	// MetricReportWriter implementations
	_ MetricReportWriter = (*ConsoleMetricWriter)(nil)
	_ MetricReportWriter = (*JSONMetricWriter)(nil)
	_ MetricReportWriter = (*CSVMetricWriter)(nil)
	_ MetricReportWriter = (*MarkdownMetricWriter)(nil)

	// ImpactReportWriter implementations
	_ ImpactReportWriter = (*ConsoleImpactWriter)(nil)
	_ ImpactReportWriter = (*JSONImpactWriter)(nil)
	_ ImpactReportWriter = (*CIImpactWriter)(nil)

	// HistoryReportWriter implementations
	_ HistoryReportWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryReportWriter = (*JSONHistoryWriter)(nil)

	// ChangesReportWriter implementations
	_ ChangesReportWriter = (*ConsoleChangesWriter)(nil)
	_ ChangesReportWriter = (*JSONChangesWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	// FormatCI emits NDJSON for pipeline consumption; impact reports only.
	FormatCI OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// MetricReport holds ranked metric results over one collection.
type MetricReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Commits     int
	Rankings    []metrics.Ranking
}

// ImpactReport holds the risk assessment of uncommitted changes.
type ImpactReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Changes     map[string]git.WorkingChange
	Files       []metrics.FileImpact
	Team        []metrics.Finding
}

// HistoryReport lists collected commits.
type HistoryReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Commits     []git.Commit
}

// ChangesReport lists uncommitted working-tree changes.
type ChangesReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Changes     map[string]git.WorkingChange
}

// MetricReportWriter writes metric reports.
type MetricReportWriter interface {
	Write(report *MetricReport, options OutputOptions) error
}

// ImpactReportWriter writes impact reports.
type ImpactReportWriter interface {
	Write(report *ImpactReport, options OutputOptions) error
}

// HistoryReportWriter writes history reports.
type HistoryReportWriter interface {
	Write(report *HistoryReport, options OutputOptions) error
}

// ChangesReportWriter writes working-changes reports.
type ChangesReportWriter interface {
	Write(report *ChangesReport, options OutputOptions) error
}

// NewMetricReportWriter creates a metric report writer for the
// specified format.
func NewMetricReportWriter(format OutputFormat) MetricReportWriter {
	switch format {
	case FormatJSON:
		return &JSONMetricWriter{}
	case FormatCSV:
		return &CSVMetricWriter{}
	case FormatMarkdown:
		return &MarkdownMetricWriter{}
	default:
		return &ConsoleMetricWriter{}
	}
}

// NewImpactReportWriter creates an impact report writer for the
// specified format.
func NewImpactReportWriter(format OutputFormat) ImpactReportWriter {
	switch format {
	case FormatJSON:
		return &JSONImpactWriter{}
	case FormatCI:
		return &CIImpactWriter{}
	default:
		return &ConsoleImpactWriter{}
	}
}

// NewHistoryReportWriter creates a history report writer for the
// specified format.
func NewHistoryReportWriter(format OutputFormat) HistoryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}

// NewChangesReportWriter creates a working-changes report writer for
// the specified format.
func NewChangesReportWriter(format OutputFormat) ChangesReportWriter {
	switch format {
	case FormatJSON:
		return &JSONChangesWriter{}
	default:
		return &ConsoleChangesWriter{}
	}
}
