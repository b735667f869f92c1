package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	domsession "example.com/storefront/app/internal/domain/session"
)

type sessionFile struct {
	Token     string    `yaml:"token"`
	Username  string    `yaml:"username"`
	Balance   int64     `yaml:"balance"`
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
}

// FileStore keeps the session in a single YAML file. All keys live in the
// one file, so they are written and removed together.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*domsession.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domsession.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if f.Token == "" {
		return nil, domsession.ErrNoSession
	}
	return &domsession.Session{
		Token:     f.Token,
		Username:  f.Username,
		Balance:   f.Balance,
		ExpiresAt: f.ExpiresAt,
	}, nil
}

// Save replaces the stored session. The file is written next to its final
// location and renamed into place.
func (s *FileStore) Save(ctx context.Context, sess *domsession.Session) error {
	if sess == nil {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(sessionFile{
		Token:     sess.Token,
		Username:  sess.Username,
		Balance:   sess.Balance,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in memory, for one-off runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	session *domsession.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*domsession.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, domsession.ErrNoSession
	}
	cloned := *s.session
	return &cloned, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *domsession.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess == nil {
		s.session = nil
		return nil
	}
	cloned := *sess
	s.session = &cloned
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
