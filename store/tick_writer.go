package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// tickWriter streams tick rows for one round into outDir/tmp and moves the
// file into outDir on finalize.
type tickWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	rows int
}

func newTickWriter(outDir, roundID string) (*tickWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := roundFileName(roundID)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", tickSchema)

	return &tickWriter{
		tmpPath: tmpPath,
		outPath: filepath.Join(outDir, name),
		file:    f,
		writer:  w,
	}, nil
}

func (t *tickWriter) write(row TickRow) error {
	if t.writer == nil {
		return fmt.Errorf("tick writer is closed")
	}
	if _, err := t.writer.Write([]TickRow{row}); err != nil {
		return fmt.Errorf("write tick: %w", err)
	}
	t.rows++
	return nil
}

// finalize closes the writer and renames the file into place. With no rows
// the tmp file is removed and the returned path is empty.
func (t *tickWriter) finalize() (string, error) {
	if t.writer == nil && t.file == nil {
		return "", nil
	}

	var closeErr error
	if t.writer != nil {
		closeErr = t.writer.Close()
		t.writer = nil
	}
	var fileErr error
	if t.file != nil {
		_ = t.file.Sync()
		fileErr = t.file.Close()
		t.file = nil
	}
	if closeErr != nil {
		_ = os.Remove(t.tmpPath)
		return "", fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		_ = os.Remove(t.tmpPath)
		return "", fmt.Errorf("close parquet file: %w", fileErr)
	}

	if t.rows == 0 {
		_ = os.Remove(t.tmpPath)
		return "", nil
	}
	if err := os.Rename(t.tmpPath, t.outPath); err != nil {
		_ = os.Remove(t.tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return t.outPath, nil
}

// discard drops the round without publishing anything.
func (t *tickWriter) discard() {
	if t.writer != nil {
		_ = t.writer.Close()
		t.writer = nil
	}
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
	_ = os.Remove(t.tmpPath)
}
