package weather

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ModeStore persists the selected mode as a single string. Load returns ""
// with a nil error when nothing is stored.
type ModeStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, mode string) error
}

// MemoryStore keeps the mode in memory. The zero value is ready to use.
type MemoryStore struct {
	value string
}

// NewMemoryStore returns a store preloaded with value.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value}
}

// Load returns the stored value.
func (m *MemoryStore) Load(context.Context) (string, error) {
	return m.value, nil
}

// Save replaces the stored value.
func (m *MemoryStore) Save(_ context.Context, mode string) error {
	m.value = mode
	return nil
}

// FileStore keeps the mode in a small TOML file as key = "mode". Other keys
// in the file are preserved on Save.
type FileStore struct {
	Path string
	Key  string
}

// NewFileStore returns a store for path using key.
func NewFileStore(path, key string) *FileStore {
	return &FileStore{Path: path, Key: key}
}

func (f *FileStore) read() (map[string]any, error) {
	doc := map[string]any{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("file store %s: %w", f.Path, err)
	}
	return doc, nil
}

// Load reads the mode string. A missing file or key yields "".
func (f *FileStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := doc[f.Key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("file store %s: %w: %s is %T", f.Path, ErrInvalidMode, f.Key, v)
	}
	return s, nil
}

// Save writes the mode string, creating the file and its directory if needed.
func (f *FileStore) Save(ctx context.Context, mode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[f.Key] = mode

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("file store %s: %w", f.Path, err)
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("file store: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}
