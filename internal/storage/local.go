package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/otiai10/copy"
)

// LocalStorage keeps payloads in a directory tree on the local disk
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Join(elem ...string) string {
	return filepath.Join(append([]string{s.root}, elem...)...)
}

// Copy copies src to a staging file next to dst and renames it into place,
// so dst never holds a partial payload.
func (s *LocalStorage) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", src, ErrNotRegularFile)
	}

	dir := filepath.Dir(dst)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	staging := filepath.Join(dir, "."+uuid.New().String()+".part")
	err = copy.Copy(src, staging, copy.Options{
		PreserveTimes: true,
		Sync:          true,
	})
	if err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("failed to copy file: %w", err)
	}

	err = os.Rename(staging, dst)
	if err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *LocalStorage) Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	return info.Size(), nil
}

func (s *LocalStorage) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (s *LocalStorage) Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
