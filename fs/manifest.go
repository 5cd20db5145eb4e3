package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"sync"

	"github.com/fwojciec/doxfix"
	"github.com/natefinch/atomic"
)

// DefaultManifestName is the manifest file name inside a documentation root.
const DefaultManifestName = ".doxfix.json"

const manifestVersion = 1

// Ensure Manifest implements doxfix.Manifest at compile time.
var _ doxfix.Manifest = (*Manifest)(nil)

// Manifest is a JSON file mapping page paths to the hash of the content
// doxfix last wrote or verified. It is safe for concurrent use.
type Manifest struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	dirty   bool
}

type manifestFile struct {
	Version int               `json:"version"`
	Pages   map[string]string `json:"pages"`
}

// OpenManifest loads the manifest at path.
// A missing file yields an empty manifest; it is created on the first Flush.
func OpenManifest(path string) (*Manifest, error) {
	m := &Manifest{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}

	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, doxfix.Errorf(doxfix.EINVALID, "corrupt manifest %q: %v", path, err)
	}
	if file.Version != manifestVersion {
		return nil, doxfix.Errorf(doxfix.EINVALID, "unsupported manifest version %d in %q", file.Version, path)
	}
	for page, hash := range file.Pages {
		m.entries[page] = hash
	}
	return m, nil
}

// Fixed reports whether hash is the recorded hash for path.
func (m *Manifest) Fixed(path, hash string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	recorded, ok := m.entries[path]
	return ok && recorded == hash
}

// Record stores hash as the current hash for path.
func (m *Manifest) Record(path, hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[path] == hash {
		return
	}
	m.entries[path] = hash
	m.dirty = true
}

// Len returns the number of recorded pages.
func (m *Manifest) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Flush writes the manifest atomically if anything changed since the last flush.
func (m *Manifest) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}

	data, err := json.MarshalIndent(manifestFile{Version: manifestVersion, Pages: m.entries}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(m.path, bytes.NewReader(data)); err != nil {
		return err
	}
	m.dirty = false
	return nil
}
