package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const fileFormatVersion = 1

// FileKV keeps all values in a single JSON document on disk. When a
// passphrase is set the values are sealed with XChaCha20-Poly1305.
type FileKV struct {
	mu         sync.Mutex
	path       string
	passphrase string
}

type fileDocument struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values,omitempty"`
	Sealed  *sealedBlob       `json:"sealed,omitempty"`
}

// NewFileKV creates the parent directory if missing. The file itself is
// created on first write.
func NewFileKV(path, passphrase string) (*FileKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("credentials file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}
	return &FileKV{path: path, passphrase: passphrase}, nil
}

// Path returns the credentials file location.
func (f *FileKV) Path() string { return f.path }

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(values, key)
	}
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove credentials file: %w", err)
		}
		return nil
	}
	return f.write(values)
}

func (f *FileKV) Close() error { return nil }

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if doc.Sealed == nil {
		if doc.Values == nil {
			doc.Values = make(map[string]string)
		}
		return doc.Values, nil
	}
	if f.passphrase == "" {
		return nil, ErrSealed
	}
	plaintext, err := unseal(f.passphrase, doc.Sealed)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, fmt.Errorf("parse sealed credentials: %w", err)
	}
	return values, nil
}

func (f *FileKV) write(values map[string]string) error {
	doc := fileDocument{Version: fileFormatVersion}
	if f.passphrase == "" {
		doc.Values = values
	} else {
		plaintext, err := json.Marshal(values)
		if err != nil {
			return err
		}
		blob, err := seal(f.passphrase, plaintext)
		if err != nil {
			return err
		}
		doc.Sealed = blob
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}
