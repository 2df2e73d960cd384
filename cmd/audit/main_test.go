package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wapi/api/internal/config"
	"github.com/wapi/api/internal/model"
	"github.com/wapi/api/internal/store"
)

func TestBuildReport(t *testing.T) {
	s, err := store.Open(&config.Config{
		StoreBackend: config.BackendSQLite,
		DatabaseURL:  filepath.Join(t.TempDir(), "words.db"),
		GormLogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	s.UpsertBatch(ctx, model.TableRandom, []model.Word{
		{PartitionKey: "5", RowKey: "1", Text: "crane"},
		{PartitionKey: "5", RowKey: "2", Text: "slate"},
	})
	s.UpsertBatch(ctx, model.TableLookup, []model.Word{
		{PartitionKey: "5", RowKey: "crane", Text: "crane"},
	})
	s.UpsertBatch(ctx, model.TableDaily, []model.Word{
		{PartitionKey: "5", RowKey: "20261017", Text: "crane"},
		{PartitionKey: "5", RowKey: "20261018", Text: "slate"},
	})

	now := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	report, err := buildReport(ctx, s, now)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	if len(report.Sizes) != 3 {
		t.Fatalf("expected 3 sizes, got %d", len(report.Sizes))
	}
	five := report.Sizes[0]
	if five.RandomCount != 2 || five.LookupCount != 1 || five.DailyRemaining != 1 {
		t.Errorf("unexpected size 5 report %+v", five)
	}
	if !five.BoundMismatch() {
		t.Error("expected mismatch against the static bound")
	}
	if report.LastRun != nil {
		t.Error("expected no seed run")
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()
	if !strings.Contains(out, "bound mismatch") || !strings.Contains(out, "No seed runs recorded") {
		t.Errorf("unexpected report output:\n%s", out)
	}
}

func TestBoundMismatch(t *testing.T) {
	sr := SizeReport{Size: 7, RandomCount: 23949, StaticBound: 23950}
	if sr.BoundMismatch() {
		t.Error("23949 rows match bound 23950")
	}
}
