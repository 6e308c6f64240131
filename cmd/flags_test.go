package cmd

import (
	"testing"

	"github.com/masmgr/gitsect/internal/output"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "console", want: output.FormatConsole},
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "unknown", want: output.FormatConsole},
		{input: "", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApp_Commands(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App returned nil")
	}
	if app.Name != "gitsect" {
		t.Errorf("app.Name = %q, want %q", app.Name, "gitsect")
	}

	for _, name := range []string{"metrics", "impact", "history", "changes", "cache", "plugins"} {
		if app.Command(name) == nil {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestApp_CommandAliases(t *testing.T) {
	app := App()

	tests := []struct {
		alias string
		want  string
	}{
		{alias: "m", want: "metrics"},
		{alias: "i", want: "impact"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			command := app.Command(tt.alias)
			if command == nil {
				t.Fatalf("alias %q resolves to no command", tt.alias)
			}
			if command.Name != tt.want {
				t.Errorf("alias %q resolves to %q, want %q", tt.alias, command.Name, tt.want)
			}
		})
	}
}
