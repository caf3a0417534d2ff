package migration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WritePair writes both files of p, creating the directory if needed.
// The up file is written first; a failure afterwards can leave it without its down file.
func WritePair(p Pair, up, down string) error {
	if err := os.MkdirAll(filepath.Dir(p.Up), 0o755); err != nil {
		return fmt.Errorf("migration: failed to create directory: %w", err)
	}
	if err := os.WriteFile(p.Up, []byte(up), 0o644); err != nil {
		return fmt.Errorf("migration: failed to write %s: %w", p.Up, err)
	}
	if err := os.WriteFile(p.Down, []byte(down), 0o644); err != nil {
		return fmt.Errorf("migration: failed to write %s: %w", p.Down, err)
	}
	return nil
}

// CopyBackup copies src over dst, keeping the file mode and modification time.
func CopyBackup(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("migration: failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("migration: failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("migration: failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("migration: failed to copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("migration: failed to close %s: %w", dst, err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("migration: failed to set mode on %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("migration: failed to set times on %s: %w", dst, err)
	}
	return nil
}

// FileStore is the filesystem implementation used by the migration service.
type FileStore struct{}

// NextSequence implements service.MigrationStore.
func (FileStore) NextSequence(dir string) (string, error) {
	return NextSequence(dir)
}

// WritePair implements service.MigrationStore.
func (FileStore) WritePair(p Pair, up, down string) error {
	return WritePair(p, up, down)
}

// CopyBackup implements service.MigrationStore.
func (FileStore) CopyBackup(src, dst string) error {
	return CopyBackup(src, dst)
}
