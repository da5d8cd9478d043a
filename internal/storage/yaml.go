package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// errCorruptFile marks a store file that exists but cannot be parsed.
var errCorruptFile = errors.New("corrupt store file")

// YAMLStore keeps every key in a single YAML document on disk. Values are
// stored as JSON text so the file stays readable and hand editable.
type YAMLStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

type yamlDocument struct {
	Values map[string]string `yaml:"values"`
}

// NewYAMLStore creates a store backed by the file at path. The file is
// created on the first write, and a corrupt file is replaced by it.
func NewYAMLStore(path string, logger *slog.Logger) *YAMLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &YAMLStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (store *YAMLStore) Path() string {
	return store.path
}

func (store *YAMLStore) Get(key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	document, err := store.readLocked()
	if err != nil {
		return nil, err
	}
	value, ok := document.Values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (store *YAMLStore) Set(key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	document, err := store.readLocked()
	if errors.Is(err, errCorruptFile) {
		store.logger.Warn("replacing corrupt store file", "path", store.path, "error", err)
		document, err = yamlDocument{Values: make(map[string]string)}, nil
	}
	if err != nil {
		return err
	}
	document.Values[key] = string(value)
	return store.writeLocked(document)
}

func (store *YAMLStore) readLocked() (yamlDocument, error) {
	document := yamlDocument{Values: make(map[string]string)}

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document, nil
		}
		return document, fmt.Errorf("read store file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return yamlDocument{Values: make(map[string]string)}, fmt.Errorf("%w: parse store yaml: %w", errCorruptFile, err)
	}
	if document.Values == nil {
		document.Values = make(map[string]string)
	}
	return document, nil
}

func (store *YAMLStore) writeLocked(document yamlDocument) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	serialized, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal store yaml: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
