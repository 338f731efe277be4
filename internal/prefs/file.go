package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// File keeps all preferences in one small JSON object on disk. Writes go
// through a temp file and a rename so a crash never leaves a torn file.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a store backed by the JSON file at path
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, &domain.PrefsError{Op: "get", Key: key, Err: err}
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return &domain.PrefsError{Op: "set", Key: key, Err: err}
	}
	values[key] = value
	if err := f.save(values); err != nil {
		return &domain.PrefsError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return &domain.PrefsError{Op: "remove", Key: key, Err: err}
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if err := f.save(values); err != nil {
		return &domain.PrefsError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// load reads the file. A missing or corrupted file reads as empty; the next
// save replaces it.
func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)
	if f.path == "" {
		return nil, errors.New("no preferences path configured")
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, err
	}
	if err := sonic.ConfigStd.Unmarshal(b, &values); err != nil {
		return make(map[string]string), nil
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := sonic.ConfigStd.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
