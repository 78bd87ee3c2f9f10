package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/cflow/internal/model"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", buf.String())
	}
}

func TestNewWithWriter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true)

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote info: %s", buf.String())
	}
	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("quiet logger dropped warn: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter(&buf, false))

	log := FromContext(ctx)
	log.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected log output from retrieved logger")
	}
}

func TestFromContext_Missing(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.GetLevel())
	}
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	Diagnostics(log, model.Diagnostics{
		{Kind: model.DiagProrated, Source: "expand", Row: 0, Transaction: "Groceries", Message: "prorated"},
		{Kind: model.DiagMissingInput, Source: "load", Row: -1, Message: "no supplemental"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"transaction":"Groceries"`) {
		t.Errorf("prorated line = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || strings.Contains(lines[1], `"row"`) {
		t.Errorf("missing_input line = %s", lines[1])
	}
}
