package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithOrderID(ctx, "1700000000000")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"request_id\"")) {
		t.Fatalf("expected request_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"order_id\":\"1700000000000\"")) {
		t.Fatalf("expected order_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected stack trace on error; entry=%s", buf.String())
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf, WarnStack: true})
	log.Warn(context.Background(), "warny")
	if !bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected stack when warn stack enabled")
	}

	buf.Reset()
	log = New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})
	log.Warn(context.Background(), "warny")
	if bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected no stack when warn stack disabled")
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.WarnLevel, Output: buf})
	log.Info(context.Background(), "quiet")
	log.Debug(context.Background(), "quieter")
	if buf.Len() != 0 {
		t.Fatalf("expected info and debug to be filtered, got %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("invalid level should fallback to info, got %v", lvl)
	}
	if lvl := ParseLevel(" WARN "); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var log *Logger
	ctx := log.WithOrderID(context.Background(), "1")
	ctx = log.WithLineID(ctx, "line-1")
	log.Info(ctx, "ignored")
	log.Warn(ctx, "ignored")
	log.Error(ctx, "ignored", errors.New("boom"))
	if ctx == nil {
		t.Fatalf("expected the context to be passed through")
	}
}

func TestLoggerLineAndComponentFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	ctx := log.WithComponent(context.Background(), "order_scheduler")
	ctx = log.WithLineID(ctx, "line-7")
	log.Info(ctx, "cart.updated")

	if !bytes.Contains(buf.Bytes(), []byte(`"line_id":"line-7"`)) || !bytes.Contains(buf.Bytes(), []byte(`"component":"order_scheduler"`)) {
		t.Fatalf("expected line_id and component fields; entry=%s", buf.String())
	}
}

func TestWithTraceAddsSpanIdentifiers(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	if ctx := context.Background(); log.WithTrace(ctx) != ctx {
		t.Fatalf("expected ctx without a span to be returned unchanged")
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := log.WithTrace(trace.ContextWithSpanContext(context.Background(), sc))
	log.Info(ctx, "checkout.completed")

	if !bytes.Contains(buf.Bytes(), []byte(`"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)) ||
		!bytes.Contains(buf.Bytes(), []byte(`"span_id":"00f067aa0ba902b7"`)) {
		t.Fatalf("expected trace fields; entry=%s", buf.String())
	}
}
