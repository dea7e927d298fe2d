package reminders

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cwhitfield/cert-tracker/internal/logger"
)

// Entry is one exam-reminder configuration. The stored exam date uses
// the dash format (yyyy-mm-dd), distinct from the cert record's
// slash display format.
type Entry struct {
	Created      string `json:"created"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	ExamDate     string `json:"examDate"`
	Frequency    string `json:"frequency"`
	StartingFrom string `json:"starting_from"`
}

// Store is a single JSON document keyed by normalized cert code. Every
// operation is a whole-document read-modify-write guarded by a mutex,
// so concurrent updates for different certs cannot clobber each other.
type Store struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

func NewStore(path string, baseLog *logger.Logger) *Store {
	storeLog := baseLog.With("service", "ReminderStore")
	return &Store{path: path, log: storeLog}
}

// Set creates or overwrites the entry for code.
func (s *Store) Set(code string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[code] = entry
	return s.write(entries)
}

// Delete removes the entry for code. It reports false, without
// touching the file, when no entry exists.
func (s *Store) Delete(code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return false, err
	}
	if _, ok := entries[code]; !ok {
		return false, nil
	}
	delete(entries, code)
	if err := s.write(entries); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Get(code string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, false, err
	}
	entry, ok := entries[code]
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (s *Store) All() (map[string]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *Store) read() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reminder file: %w", err)
	}
	entries := map[string]Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse reminder file: %w", err)
	}
	return entries, nil
}

func (s *Store) write(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode reminder file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write reminder file: %w", err)
	}
	return nil
}
