package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func timeNow() time.Time { return time.Now() }

func TestAsyncHandlerDeliversAndFlushes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	async := NewAsyncHandler(slog.NewJSONHandler(&buf, nil), AsyncOptions{BufferSize: 8})

	log := slog.New(async)
	log.Info("buffered")

	if err := async.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), "buffered") {
		t.Errorf("record lost after flush: %q", buf.String())
	}
}

func TestAsyncHandlerShutdownIdempotent(t *testing.T) {
	t.Parallel()

	async := NewAsyncHandler(slog.NewJSONHandler(&bytes.Buffer{}, nil), AsyncOptions{})
	if err := async.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := async.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown should be a no-op: %v", err)
	}
}

func TestAsyncHandlerDropsAfterShutdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	async := NewAsyncHandler(slog.NewJSONHandler(&buf, nil), AsyncOptions{})
	if err := async.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	// Must not panic or block.
	if err := async.Handle(context.Background(), slog.NewRecord(timeNow(), slog.LevelInfo, "late", 0)); err != nil {
		t.Fatalf("Handle after shutdown: %v", err)
	}
	if strings.Contains(buf.String(), "late") {
		t.Error("record should be dropped after shutdown")
	}
}
