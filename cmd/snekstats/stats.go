package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DifficultySummary aggregates every recorded round at one difficulty.
type DifficultySummary struct {
	Difficulty      string
	Rounds          int64
	BestScore       int64
	MeanScore       float64
	MeanFinalLength float64
	Ticks           int64
}

// CauseCount is how many rounds at a difficulty ended for one cause.
type CauseCount struct {
	Difficulty string
	Cause      string
	Rounds     int64
}

type Report struct {
	Files        int
	Difficulties []DifficultySummary
	Causes       []CauseCount
}

// findRoundFiles returns every round summary under root, skipping tmp/.
func findRoundFiles(root string) ([]string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, nil
	}
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if name == "tmp" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "rounds_") && strings.HasSuffix(name, ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			return nil, nil
		}
		return nil, walkErr
	}
	return files, nil
}

// openDuckDB creates an in-memory database with a rounds view over files.
func openDuckDB(files []string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = "'" + escapeSQLString(f) + "'"
	}
	sqlText := `CREATE OR REPLACE VIEW rounds AS
		SELECT * FROM read_parquet([` + strings.Join(quoted, ",") + `], union_by_name=true)`
	if _, err := db.Exec(sqlText); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create rounds view: %w", err)
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// difficultyOrder sorts levels by play order rather than by name.
const difficultyOrder = `CASE lower(difficulty) WHEN 'easy' THEN 0 WHEN 'normal' THEN 1 WHEN 'hard' THEN 2 ELSE 3 END`

func querySummaries(ctx context.Context, db *sql.DB) ([]DifficultySummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			difficulty,
			COUNT(*)                                   AS rounds,
			CAST(MAX(score) AS BIGINT)                 AS best_score,
			AVG(score)                                 AS mean_score,
			AVG(final_length)                          AS mean_final_length,
			CAST(SUM(ticks) AS BIGINT)                 AS ticks
		FROM rounds
		GROUP BY difficulty
		ORDER BY `+difficultyOrder)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []DifficultySummary
	for rows.Next() {
		var s DifficultySummary
		if err := rows.Scan(&s.Difficulty, &s.Rounds, &s.BestScore, &s.MeanScore, &s.MeanFinalLength, &s.Ticks); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func queryCauses(ctx context.Context, db *sql.DB) ([]CauseCount, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT difficulty, cause, COUNT(*) AS rounds
		FROM rounds
		GROUP BY difficulty, cause
		ORDER BY `+difficultyOrder+`, rounds DESC, cause`)
	if err != nil {
		return nil, fmt.Errorf("query causes: %w", err)
	}
	defer rows.Close()

	var out []CauseCount
	for rows.Next() {
		var c CauseCount
		if err := rows.Scan(&c.Difficulty, &c.Cause, &c.Rounds); err != nil {
			return nil, fmt.Errorf("scan cause: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// loadReport summarises every round recorded under dir. A directory with no
// recordings yields an empty report.
func loadReport(ctx context.Context, dir string) (Report, error) {
	files, err := findRoundFiles(dir)
	if err != nil {
		return Report{}, fmt.Errorf("find round files: %w", err)
	}
	if len(files) == 0 {
		return Report{}, nil
	}

	db, err := openDuckDB(files)
	if err != nil {
		return Report{}, err
	}
	defer db.Close()

	summaries, err := querySummaries(ctx, db)
	if err != nil {
		return Report{}, err
	}
	causes, err := queryCauses(ctx, db)
	if err != nil {
		return Report{}, err
	}
	return Report{Files: len(files), Difficulties: summaries, Causes: causes}, nil
}
