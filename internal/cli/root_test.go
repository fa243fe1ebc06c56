package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"learn":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want %v", got, log.DebugLevel)
	}
}

func TestCacheSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	cacheCmd := c.cacheCommand()

	names := make(map[string]bool)
	for _, cmd := range cacheCmd.Commands() {
		names[cmd.Name()] = true
	}
	if !names["clear"] || !names["path"] {
		t.Errorf("cache command should have clear and path subcommands, got %v", names)
	}
}
