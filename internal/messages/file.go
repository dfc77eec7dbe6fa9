package messages

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/logging"
)

// DefaultFileName is the name of the JSON message file.
const DefaultFileName = "messages.json"

// FileStore keeps messages as a single JSON array on disk.
type FileStore struct {
	path string
	opts Options

	mu sync.Mutex
}

// NewFileStore creates a file store at path.
func NewFileStore(path string, opts Options) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("message file path is required")
	}
	return &FileStore{path: path, opts: opts.withDefaults()}, nil
}

// Path returns the message file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) List() ([]core.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileStore) Add(in Input) (core.Message, error) {
	m, err := newMessage(in, s.opts)
	if err != nil {
		return core.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := prepend(s.load(), m, s.opts.Limit)
	if err := s.save(list); err != nil {
		return core.Message{}, err
	}
	return m, nil
}

func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, found := without(s.load(), id)
	if !found {
		return nil
	}
	return s.save(list)
}

func (s *FileStore) Close() error { return nil }

// load reads the file. Missing or corrupt files read as empty.
func (s *FileStore) load() []core.Message {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read message file", logging.String("path", s.path), logging.Err(err))
		}
		return []core.Message{}
	}

	var list []core.Message
	if err := json.Unmarshal(data, &list); err != nil {
		logging.Warn("ignoring corrupt message file", logging.String("path", s.path), logging.Err(err))
		return []core.Message{}
	}

	// Another writer may have saved an unsorted or longer list.
	slices.SortStableFunc(list, func(a, b core.Message) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	if len(list) > s.opts.Limit {
		list = list[:s.opts.Limit]
	}
	return list
}

// save replaces the file atomically so a reader never sees a partial write.
func (s *FileStore) save(list []core.Message) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".messages-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write messages: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write messages: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set message file permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace message file: %w", err)
	}
	return nil
}
