package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVMetricWriter writes metric reports as CSV.
type CSVMetricWriter struct{}

// Write outputs the metric report as CSV, one row per ranked entry
// across all metrics.
func (w *CSVMetricWriter) Write(report *MetricReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	headers := []string{"Metric", "Rank", "Subject", "Score", "Details"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, ranking := range report.Rankings {
		for i, entry := range ranking.Entries {
			score := entry.ScoreText
			if score == "" {
				score = fmt.Sprintf("%.6f", entry.Score)
			}
			row := []string{
				ranking.MetricID,
				fmt.Sprintf("%d", i+1),
				entry.Subject,
				score,
				strings.Join(entry.Extra, "; "),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
