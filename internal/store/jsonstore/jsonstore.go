package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking: the file belongs to one running process.

// DefaultFileName is the data file name used when only a directory is configured.
const DefaultFileName = "tada.json"

// schemaVersion is written into every blob. Blobs without a version
// predate it and are read as version 1.
const schemaVersion = 1

var (
	// ErrUnsupportedVersion is returned when a blob was written by a newer schema.
	ErrUnsupportedVersion = errors.New("unsupported data version")
	// ErrNotObject is returned when the blob is valid JSON but not an object.
	ErrNotObject = errors.New("data is not a JSON object")
)

// document is the on-disk shape of model.AppData.
type document struct {
	Version int           `json:"version,omitempty"`
	Tasks   []model.Task  `json:"tasks"`
	User    model.Session `json:"user"`
}

// Store persists model.AppData to one JSON file.
type Store struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load fallbacks and write failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used to timestamp seed data.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store backed by the file at path. The file and its
// directory are created on first save.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Load reads the blob. A missing or empty file is seeded with
// store.Defaults and written back. A file that can't be read or decoded
// yields the defaults but is left untouched on disk.
func (s *Store) Load() model.AppData {
	b, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to read data file, using defaults",
			slog.String("path", s.path), slog.String("error", err.Error()))
		return store.Defaults(s.now())
	}
	if len(bytes.TrimSpace(b)) == 0 {
		data := store.Defaults(s.now())
		if err := s.Save(data); err != nil {
			s.logger.Warn("Failed to persist seed data", slog.String("path", s.path), slog.String("error", err.Error()))
		} else {
			s.logger.Debug("Seeded data file", slog.String("path", s.path))
		}
		return data
	}

	data, err := Decode(b)
	if err != nil {
		s.logger.Warn("Failed to decode data file, using defaults",
			slog.String("path", s.path), slog.String("error", err.Error()))
		return store.Defaults(s.now())
	}
	return data
}

// Save writes the whole blob atomically: a temp file in the same
// directory is renamed over the data file.
func (s *Store) Save(data model.AppData) error {
	b, err := Encode(data)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, b, 0o600); err != nil {
		s.logger.Warn("Failed to write data file", slog.String("path", s.path), slog.String("error", err.Error()))
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Encode renders data in the on-disk format.
func Encode(data model.AppData) ([]byte, error) {
	doc := document{Version: schemaVersion, Tasks: data.Tasks, User: data.User}
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses the on-disk format strictly: unknown fields, trailing
// data, newer schema versions and tasks failing model.Task.Validate
// (including a null or missing priority) are all errors.
func Decode(b []byte) (model.AppData, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return model.AppData{}, ErrNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return model.AppData{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.AppData{}, errors.New("json unmarshal: trailing data after object")
	}

	switch doc.Version {
	case 0, schemaVersion:
	default:
		return model.AppData{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	for i, t := range doc.Tasks {
		if err := t.Validate(); err != nil {
			return model.AppData{}, fmt.Errorf("task %d: %w", i, err)
		}
	}
	return model.AppData{Tasks: doc.Tasks, User: doc.User}, nil
}

func writeFileAtomic(path string, b []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return renameio.WriteFile(path, b, perm, renameio.WithTempDir(dir))
}
