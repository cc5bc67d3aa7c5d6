package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Staging is a temporary directory that replaces a target directory only
// when Publish is called. Until then the target is left untouched.
type Staging struct {
	Dir    string
	target string
	done   bool
}

// NewStaging creates an empty staging directory next to target, so the final
// rename stays on one file system.
func NewStaging(target string) (*Staging, error) {
	parent := filepath.Dir(target)
	dir := filepath.Join(parent, fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.NewString()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", dir, err)
	}
	return &Staging{Dir: dir, target: target}, nil
}

// WriteFile writes data to rel inside the staging directory, creating parent
// directories as needed.
func (s *Staging) WriteFile(rel string, data []byte) error {
	path := filepath.Join(s.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Publish replaces the target directory with the staged one. The previous
// target is moved aside first and removed only after the rename succeeded.
func (s *Staging) Publish() error {
	if s.done {
		return fmt.Errorf("staging directory %s was already published or discarded", s.Dir)
	}
	backup := s.Dir + ".old"
	hadTarget := false
	if _, err := os.Stat(s.target); err == nil {
		if err := os.Rename(s.target, backup); err != nil {
			return fmt.Errorf("failed to move %s aside: %w", s.target, err)
		}
		hadTarget = true
	}
	if err := os.Rename(s.Dir, s.target); err != nil {
		if hadTarget {
			_ = os.Rename(backup, s.target)
		}
		return fmt.Errorf("failed to publish %s: %w", s.target, err)
	}
	s.done = true
	if hadTarget {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("failed to remove previous %s: %w", backup, err)
		}
	}
	return nil
}

// Discard removes the staging directory. It is a no-op after Publish, so it
// can be deferred unconditionally.
func (s *Staging) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	return os.RemoveAll(s.Dir)
}
