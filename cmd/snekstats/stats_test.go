package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brensch/snekterm/store"
	"github.com/parquet-go/parquet-go"
)

func writeRounds(t *testing.T, path string, rows ...store.RoundRow) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func seedRounds(t *testing.T) string {
	dir := t.TempDir()
	writeRounds(t, filepath.Join(dir, "rounds_a.parquet"), store.RoundRow{
		RoundID: "a", Difficulty: "Normal", Score: 3, Ticks: 100, FinalLength: 20, Cause: "border",
	})
	writeRounds(t, filepath.Join(dir, "rounds_b.parquet"), store.RoundRow{
		RoundID: "b", Difficulty: "Normal", Score: 1, Ticks: 50, FinalLength: 10, Cause: store.CauseAbandoned,
	})
	writeRounds(t, filepath.Join(dir, "2026", "rounds_c.parquet"), store.RoundRow{
		RoundID: "c", Difficulty: "Hard", Score: 5, Ticks: 300, FinalLength: 40, Cause: "self_intersect",
	})
	writeRounds(t, filepath.Join(dir, "2026", "rounds_d.parquet"), store.RoundRow{
		RoundID: "d", Difficulty: "Easy", Score: 7, Ticks: 400, FinalLength: 50, Cause: "self_intersect",
	})
	// Neither of these is a round summary.
	writeRounds(t, filepath.Join(dir, "tmp", "rounds_e.parquet"), store.RoundRow{RoundID: "e", Difficulty: "Easy", Score: 99})
	writeRounds(t, filepath.Join(dir, "round_a.parquet"), store.RoundRow{RoundID: "ticks", Difficulty: "Easy", Score: 99})
	return dir
}

func TestFindRoundFiles(t *testing.T) {
	dir := seedRounds(t)
	files, err := findRoundFiles(dir)
	if err != nil {
		t.Fatalf("findRoundFiles: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("files=%v want 4", files)
	}
	for _, f := range files {
		if strings.Contains(f, string(filepath.Separator)+"tmp"+string(filepath.Separator)) {
			t.Fatalf("tmp file included: %s", f)
		}
	}

	missing, err := findRoundFiles(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("missing dir: files=%v err=%v", missing, err)
	}
}

func TestLoadReport(t *testing.T) {
	report, err := loadReport(context.Background(), seedRounds(t))
	if err != nil {
		t.Fatalf("loadReport: %v", err)
	}
	t.Logf("report: %+v", report)

	if len(report.Difficulties) != 3 {
		t.Fatalf("difficulties=%+v want 3", report.Difficulties)
	}
	order := []string{"Easy", "Normal", "Hard"}
	for i, want := range order {
		if got := report.Difficulties[i].Difficulty; got != want {
			t.Fatalf("row %d difficulty=%s want=%s", i, got, want)
		}
	}

	normal := report.Difficulties[1]
	if normal.Rounds != 2 || normal.BestScore != 3 || normal.MeanScore != 2 || normal.MeanFinalLength != 15 || normal.Ticks != 150 {
		t.Fatalf("normal summary=%+v", normal)
	}

	var normalCauses []CauseCount
	for _, c := range report.Causes {
		if c.Difficulty == "Normal" {
			normalCauses = append(normalCauses, c)
		}
	}
	if len(normalCauses) != 2 {
		t.Fatalf("normal causes=%+v", normalCauses)
	}
	// Equal counts break ties by cause name.
	if normalCauses[0].Cause != store.CauseAbandoned || normalCauses[1].Cause != "border" {
		t.Fatalf("normal causes=%+v", normalCauses)
	}
}

func TestLoadReport_Empty(t *testing.T) {
	report, err := loadReport(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("loadReport: %v", err)
	}
	var buf bytes.Buffer
	if err := writeReport(&buf, report); err != nil {
		t.Fatalf("writeReport: %v", err)
	}
	if got := buf.String(); got != "no rounds recorded\n" {
		t.Fatalf("output=%q", got)
	}
}

func TestWriteReport(t *testing.T) {
	report, err := loadReport(context.Background(), seedRounds(t))
	if err != nil {
		t.Fatalf("loadReport: %v", err)
	}
	var buf bytes.Buffer
	if err := writeReport(&buf, report); err != nil {
		t.Fatalf("writeReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"4 round files", "Normal", "self_intersect", "2.00", "15.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestEscapeSQLString(t *testing.T) {
	if got := escapeSQLString("it's"); got != "it''s" {
		t.Fatalf("got=%q", got)
	}
}
