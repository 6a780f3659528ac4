// Package store holds the records served by the reference video store.
//
// Records keep insertion order. When a path is configured, the full list is
// written to a YAML snapshot after every change and read back on Open.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/videos"
)

// snapshot is the on-disk layout.
type snapshot struct {
	Videos []videos.Video `yaml:"videos"`
}

// Store is an ordered set of records keyed by id. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	videos []videos.Video
	path   string
}

// NewMemory returns an empty store that is never written to disk.
func NewMemory(initial ...videos.Video) *Store {
	list, _ := videos.Dedupe(initial)
	return &Store{videos: list}
}

// Open returns a store backed by the snapshot at path, creating an empty
// one when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, videos: []videos.Video{}}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, errors.WrapIO("read", path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	s.videos, _ = videos.Dedupe(snap.Videos)
	return s, nil
}

// List returns all records in insertion order.
func (s *Store) List() []videos.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := videos.Clone(s.videos)
	if out == nil {
		out = []videos.Video{}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (videos.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := videos.IndexOf(s.videos, id); i >= 0 {
		return s.videos[i], true
	}
	return videos.Video{}, false
}

// Insert appends v. It fails with an AlreadyExistsError when the id is taken.
func (s *Store) Insert(v videos.Video) error {
	if v.ID == "" {
		return errors.NewValidationError("id", v.ID, "cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if videos.IndexOf(s.videos, v.ID) >= 0 {
		return errors.NewAlreadyExistsError("video", v.ID)
	}
	next := append(videos.Clone(s.videos), v)
	if err := s.persist(next); err != nil {
		return err
	}
	s.videos = next
	return nil
}

// Delete removes the record with the given id and returns it. It fails
// with a NotFoundError when there is no such record.
func (s *Store) Delete(id string) (videos.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := videos.IndexOf(s.videos, id)
	if i < 0 {
		return videos.Video{}, errors.NewNotFoundError("video", id)
	}
	removed := s.videos[i]
	next := make([]videos.Video, 0, len(s.videos)-1)
	next = append(next, s.videos[:i]...)
	next = append(next, s.videos[i+1:]...)
	if err := s.persist(next); err != nil {
		return videos.Video{}, err
	}
	s.videos = next
	return removed, nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.videos)
}

// persist writes list to the snapshot file through a temp file and rename.
// Callers hold mu.
func (s *Store) persist(list []videos.Video) error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.MarshalWithOptions(snapshot{Videos: list},
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".videos_*.yaml")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", s.path, err)
	}
	return nil
}
