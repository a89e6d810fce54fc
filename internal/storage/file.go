package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileDriver stores one JSON document per device under a data directory.
// Writes go through a temp file and rename so a crash never leaves a
// half-written document behind.
type FileDriver struct {
	dir string
	mu  sync.Mutex
}

func NewFileDriver(dir string) (*FileDriver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileDriver{dir: dir}, nil
}

func (f *FileDriver) Get(_ context.Context, device, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.load(device)
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileDriver) Set(_ context.Context, device, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.load(device)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if doc == nil {
		doc = make(map[string]string)
	}
	doc[key] = value
	return f.store(device, doc)
}

func (f *FileDriver) Delete(_ context.Context, device, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.load(device)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	delete(doc, key)
	return f.store(device, doc)
}

func (f *FileDriver) load(device string) (map[string]string, error) {
	b, err := os.ReadFile(f.path(device))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc := make(map[string]string)
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("corrupt device document: %w", err)
	}
	return doc, nil
}

func (f *FileDriver) store(device string, doc map[string]string) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	final := f.path(device)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}

func (f *FileDriver) path(device string) string {
	return filepath.Join(f.dir, sanitize(device)+".json")
}

// sanitize keeps device ids filesystem-safe. Ids are normally UUIDs; this
// guards against a hostile X-Device-ID header.
func sanitize(device string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, device)
}
