package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Service: "user-service", Output: &buf})

	log.Debug().Str("email", "a@x.com").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["service"] != "user-service" || entry["message"] != "hello" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second})

	log.Info().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only on the first writer: %q / %q", first.String(), second.String())
	}
}

func TestReset_AllowsRebuild(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Reset()
	log := Init(Options{Output: &second})

	log.Info().Msg("hello")
	if first.Len() != 0 || second.Len() == 0 {
		t.Fatalf("expected output only on the rebuilt writer: %q / %q", first.String(), second.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
