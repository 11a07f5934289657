package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	l := slog.New(h)
	return NewSlogLogger(l), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "debug msg", "k", "v1")
	log.Info(ctx, "info msg", "k", "v2")
	log.Warn(ctx, "warn msg", "k", "v3")
	log.Error(ctx, "error msg", "k", "v4")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "debug msg", "k=v1",
		"level=INFO", "info msg", "k=v2",
		"level=WARN", "warn msg", "k=v3",
		"level=ERROR", "error msg", "k=v4",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With_AddsPersistentAttrs(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	child := log.With("component", "session")
	child.Info(ctx, "restored")

	out := buf.String()
	if !strings.Contains(out, "component=session") {
		t.Fatalf("child logger lost attrs:\n%s", out)
	}
	if !strings.Contains(out, "restored") {
		t.Fatalf("message missing:\n%s", out)
	}
}
