package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appDirName       = "contentful"
	storeFileName    = "contentfulrc.yaml"
	settingsFileName = "settings.yaml"
)

// Store loads and persists the execution context document.
// Save replaces the whole document.
type Store interface {
	Load(ctx context.Context) (*ExecutionContext, error)
	Save(ctx context.Context, ec *ExecutionContext) error
}

// GetConfigDir returns the XDG configuration directory for the CLI
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// DefaultStorePath returns the path of the persisted context document
func DefaultStorePath() string {
	return filepath.Join(GetConfigDir(), storeFileName)
}

// GetSettingsPath returns the path of the output settings file
func GetSettingsPath() string {
	return filepath.Join(GetConfigDir(), settingsFileName)
}

// FileStore persists the execution context as a YAML file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path, or the default location when empty
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultStorePath()
	}
	return &FileStore{path: path}
}

// Path returns the file backing the store
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the context document. A missing file is an empty context.
func (s *FileStore) Load(ctx context.Context) (*ExecutionContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExecutionContext{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var ec ExecutionContext
	if err := yaml.Unmarshal(data, &ec); err != nil {
		return nil, fmt.Errorf("failed to parse context file %s: %w", s.path, err)
	}

	return &ec, nil
}

// Save writes the whole context document
func (s *FileStore) Save(ctx context.Context, ec *ExecutionContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(ec)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	// The document holds a credential
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}

	return nil
}

// MemoryStore keeps the context document in memory
type MemoryStore struct {
	mu      sync.Mutex
	doc     *ExecutionContext
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMemoryStore creates a memory store seeded with a copy of ec
func NewMemoryStore(ec *ExecutionContext) *MemoryStore {
	return &MemoryStore{doc: ec.Clone()}
}

// Load returns a copy of the stored document
func (s *MemoryStore) Load(ctx context.Context) (*ExecutionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.doc.Clone(), nil
}

// Save replaces the stored document with a copy of ec
func (s *MemoryStore) Save(ctx context.Context, ec *ExecutionContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.doc = ec.Clone()
	s.Saves++
	return nil
}

// Update merges the set fields of partial into the stored document and saves it
func Update(ctx context.Context, store Store, partial *ExecutionContext) error {
	current, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}

	merged := Merge(current, partial)
	if err := store.Save(ctx, merged); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	return nil
}

// Merge returns base with every set field of partial applied on top
func Merge(base, partial *ExecutionContext) *ExecutionContext {
	out := base.Clone()
	if partial == nil {
		return out
	}
	p := partial.Clone()

	if p.ManagementToken != "" {
		out.ManagementToken = p.ManagementToken
	}
	if p.ActiveSpaceID != "" {
		out.ActiveSpaceID = p.ActiveSpaceID
	}
	if p.ActiveEnvironmentID != "" {
		out.ActiveEnvironmentID = p.ActiveEnvironmentID
	}
	if p.Host != "" {
		out.Host = p.Host
	}
	if p.Insecure != nil {
		out.Insecure = p.Insecure
	}
	if p.RawProxy != nil {
		out.RawProxy = p.RawProxy
	}
	if p.Proxy != "" {
		out.Proxy = p.Proxy
	}
	return out
}

// Field names accepted by Remove
const (
	FieldManagementToken     = "managementToken"
	FieldActiveSpaceID       = "activeSpaceId"
	FieldActiveEnvironmentID = "activeEnvironmentId"
	FieldHost                = "host"
	FieldInsecure            = "insecure"
	FieldRawProxy            = "rawProxy"
	FieldProxy               = "proxy"
)

// Remove clears the named fields from the stored document
func Remove(ctx context.Context, store Store, fields ...string) error {
	current, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}

	for _, field := range fields {
		switch field {
		case FieldManagementToken:
			current.ManagementToken = ""
		case FieldActiveSpaceID:
			current.ActiveSpaceID = ""
		case FieldActiveEnvironmentID:
			current.ActiveEnvironmentID = ""
		case FieldHost:
			current.Host = ""
		case FieldInsecure:
			current.Insecure = nil
		case FieldRawProxy:
			current.RawProxy = nil
		case FieldProxy:
			current.Proxy = ""
		default:
			return fmt.Errorf("unknown context field '%s'", field)
		}
	}

	if err := store.Save(ctx, current); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	return nil
}
