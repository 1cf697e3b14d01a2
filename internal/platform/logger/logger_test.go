package logger

import (
	"bytes"
	"context"
	"testing"

	kit "payscope/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		" ???  ":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init is process-wide, so everything touching the root logger lives in one test
func TestRootNamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "payscope-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-line")
	Named("dataset").Info().Msg("named-line")
	C(WithRequest(context.Background(), "req-42")).Info().Msg("scoped-line")
	C(context.Background()).Info().Msg("plain-line")

	out := buf.String()
	kit.MustContain(t, out, `"service":"payscope-test"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, `"component":"dataset"`)
	kit.MustContain(t, out, `"request_id":"req-42"`)
	kit.MustContain(t, out, "plain-line")
}

func TestWithRequestIgnoresEmpty(t *testing.T) {
	ctx := context.Background()
	if got := WithRequest(ctx, ""); got != ctx {
		t.Fatalf("empty request id should return ctx unchanged")
	}
}
