package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"inspect", "frontmost", "list", "scan", "annotate", "annotations", "export", "locate", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestAnnotationsCommand_HasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range annotationsCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"list", "update", "remove", "clear"} {
		if !found[name] {
			t.Errorf("expected annotations subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"format", "pretty", "log-level", "log-json", "demo", "session-dir"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q not found", name)
		}
	}
}
