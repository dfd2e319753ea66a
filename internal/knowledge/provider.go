package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Provider serves the knowledge base to the engine and accepts administrative
// updates. Reads take a snapshot, so an update becomes visible on the next
// user turn without coordination.
type Provider struct {
	mu   sync.RWMutex
	path string
	base Base
}

// NewProvider loads the knowledge base from path, falling back to the
// built-in defaults when the file is missing.
func NewProvider(path string) (*Provider, error) {
	p := &Provider{path: path, base: Defaults()}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var b Base
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	p.base = b
	return p, nil
}

// Snapshot returns the current knowledge base. Safe for concurrent use.
func (p *Provider) Snapshot() Base {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return clone(p.base)
}

// Update replaces the knowledge base and persists it to disk.
func (p *Provider) Update(b Base) error {
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create knowledge base dir: %w", err)
		}
	}
	if err := os.WriteFile(p.path, raw, 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}

	p.mu.Lock()
	p.base = clone(b)
	p.mu.Unlock()
	return nil
}
