package git

import (
	"context"
	"strconv"
	"time"
)

// LogSource collects history by invoking the external tool's log
// command and parsing its sentinel-delimited output.
type LogSource struct {
	run  commandRunner
	opts Options
}

// NewLogSource returns a LogSource executing through runner.
func NewLogSource(runner *Runner, opts Options) *LogSource {
	return &LogSource{run: runner, opts: opts}
}

func (s *LogSource) Name() string { return "git" }

// Commits runs the log invocation and decodes every record block.
func (s *LogSource) Commits(ctx context.Context) ([]Commit, error) {
	out, err := s.run.Run(ctx, s.args()...)
	if err != nil {
		return nil, err
	}
	return ParseLog(out, s.opts.filter(), s.opts.OnProgress), nil
}

// args assembles the log invocation. The limit flag and its value are
// passed as separate tokens; the runner performs no shell splitting.
func (s *LogSource) args() []string {
	args := []string{
		"log",
		"--pretty=format:" + LogFormat,
		"--name-status",
	}
	if s.opts.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -s.opts.SinceDays).Format("2006-01-02")
		args = append(args, "--since="+since)
	}
	if s.opts.MaxCommits > 0 {
		args = append(args, "-n", strconv.Itoa(s.opts.MaxCommits))
	}
	return args
}
