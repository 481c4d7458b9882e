package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockFileName = ".dubber.lock"

// Manager owns a workspace root and hands out isolated per-job directories.
// A file lock keeps two daemonless runs from sharing the same root.
type Manager struct {
	root string
	lock *flock.Flock
}

// NewManager constructs a manager rooted at dir.
func NewManager(dir string) (*Manager, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("workspace: root directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create root: %w", err)
	}
	return &Manager{
		root: dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

// Root returns the workspace root directory.
func (m *Manager) Root() string {
	return m.root
}

// Acquire takes the run lock. It fails fast when another process holds it.
func (m *Manager) Acquire() error {
	locked, err := m.lock.TryLock()
	if err != nil {
		return fmt.Errorf("workspace: acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("workspace: %s is in use by another run", m.root)
	}
	return nil
}

// Release drops the run lock.
func (m *Manager) Release() error {
	if err := m.lock.Unlock(); err != nil {
		return fmt.Errorf("workspace: release lock: %w", err)
	}
	return nil
}

// Job is an isolated working directory for one dubbing run.
type Job struct {
	ID  string
	Dir string
}

// NewJob creates a fresh job directory under the root.
func (m *Manager) NewJob() (*Job, error) {
	id := uuid.NewString()
	dir := filepath.Join(m.root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: create job dir: %w", err)
	}
	return &Job{ID: id, Dir: dir}, nil
}

// Path resolves a file name inside the job directory.
func (j *Job) Path(name string) string {
	return filepath.Join(j.Dir, name)
}

// LanguageDir creates (if needed) and returns the per-language sub-workspace.
// Language copies never share a directory, so stages for one language cannot
// clobber another's artifacts.
func (j *Job) LanguageDir(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("workspace: language tag required")
	}
	dir := filepath.Join(j.Dir, tag)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("workspace: create language dir: %w", err)
	}
	return dir, nil
}

// Remove deletes the job directory and everything in it.
func (j *Job) Remove() error {
	return os.RemoveAll(j.Dir)
}
