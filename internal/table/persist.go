package table

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Lock is scoped exclusive access to an output path for the duration of
// a read-merge-write sequence. Orchestration invokes the pipeline once
// per model/task against the same file, so two invocations must never
// interleave their read and write phases.
type Lock struct {
	path string
}

// AcquireLock takes the lock for an output path. A held lock is fatal to
// this invocation, never waited on: the operator re-runs once the other
// merge finishes.
func AcquireLock(outputPath string) (*Lock, error) {
	lockPath := outputPath + ".lock"
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("output %s is locked by another invocation (remove %s if stale)", outputPath, lockPath)
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	_, writeErr := file.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	closeErr := file.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(lockPath)
		if writeErr != nil {
			return nil, fmt.Errorf("write lock: %w", writeErr)
		}
		return nil, fmt.Errorf("close lock: %w", closeErr)
	}
	return &Lock{path: lockPath}, nil
}

// Release removes the lock file.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// WriteAtomic persists the table by writing a temporary file in the
// destination directory and renaming it into place, so a reader never
// observes a half-written table and a failed merge leaves the previous
// file untouched.
func WriteAtomic(t *Table, path string) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if writeErr != nil {
			return fmt.Errorf("write temp table: %w", writeErr)
		}
		return fmt.Errorf("close temp table: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace table: %w", err)
	}
	return nil
}
