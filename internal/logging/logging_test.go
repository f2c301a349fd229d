package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "nested", "spoiler.log")
	closer, err := Setup(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Str("component", "poller").Msg("visible")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"visible"`) || !strings.Contains(out, `"component":"poller"`) {
		t.Fatalf("log output = %s", out)
	}
}

func TestDefaultPath_UnderStateHome(t *testing.T) {
	if got := DefaultPath(); filepath.Base(got) != "spoiler.log" || filepath.Base(filepath.Dir(got)) != "spoiler" {
		t.Fatalf("DefaultPath() = %q", got)
	}
}
