package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File keeps each blob as <dir>/<key>.blob. Blobs are opaque bytes.
type File struct {
	Dir string
}

// NewFile returns a file-backed blob store rooted at dir.
func NewFile(dir string) *File {
	return &File{Dir: dir}
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(f.Dir, key+".blob"), nil
}

// Get returns the blob stored under key. A missing file is not an error.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, true, nil
}

// Set writes the blob through a temp file so readers never see a partial write.
func (f *File) Set(_ context.Context, key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create blob dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			_ = cerr
		}
		if rerr := os.Remove(tmpName); rerr != nil {
			_ = rerr
		}
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		if rerr := os.Remove(tmpName); rerr != nil {
			_ = rerr
		}
		return fmt.Errorf("failed to close blob: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace blob: %w", err)
	}
	return nil
}
