package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, true},
		{" warn ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, c := range cases {
		got, ok := ParseLevel(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseLevel(%q) = %v %v, want %v %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogTimestamp, "nope")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || !cfg.NoColor {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Fatalf("an unparsable bool must keep the default")
	}
}

func TestApplyWritesComponentField(t *testing.T) {
	var buf bytes.Buffer
	Apply(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &buf})
	logger := For("camera")
	logger.Debug().Msg("hidden")
	logger.Info().Str("target", "moon").Msg("follow")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", out)
	}
	for _, want := range []string{"follow", "component=camera", "target=moon"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestOverrideLevelKeepsEnvironmentWhenEmpty(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	cfg.Out = &bytes.Buffer{}
	Apply(cfg)

	if err := OverrideLevel(""); err != nil {
		t.Fatal(err)
	}
	if got := log.Logger.GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("empty override replaced the env level: %v", got)
	}

	if err := OverrideLevel("warn"); err != nil {
		t.Fatal(err)
	}
	if got := log.Logger.GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected warn, got %v", got)
	}

	if err := OverrideLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if got := log.Logger.GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("unknown level changed the logger: %v", got)
	}
}
