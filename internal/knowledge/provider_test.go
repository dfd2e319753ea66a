package knowledge

import (
	"path/filepath"
	"testing"
)

func TestNewProviderFallsBackToDefaults(t *testing.T) {
	p, err := NewProvider(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	got := p.Snapshot()
	if got.Company.Name != "OptomMarket" {
		t.Fatalf("Company.Name = %q, want default", got.Company.Name)
	}
	if len(got.Capabilities) == 0 {
		t.Fatalf("default capabilities should not be empty")
	}
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	p, err := NewProvider(path)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	b := p.Snapshot()
	b.Company.Phone = "+998 90 000 00 00"
	b.ToneOfVoice = "Qisqa va rasmiy."
	if err := p.Update(b); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got := p.Snapshot(); got.Company.Phone != "+998 90 000 00 00" {
		t.Fatalf("Snapshot after Update: Phone = %q", got.Company.Phone)
	}

	reloaded, err := NewProvider(path)
	if err != nil {
		t.Fatalf("NewProvider(reload) error = %v", err)
	}
	if got := reloaded.Snapshot(); got.ToneOfVoice != "Qisqa va rasmiy." {
		t.Fatalf("reloaded ToneOfVoice = %q", got.ToneOfVoice)
	}
}

func TestSnapshotIsolatesCapabilities(t *testing.T) {
	p, err := NewProvider(filepath.Join(t.TempDir(), "kb.json"))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	snap := p.Snapshot()
	snap.Capabilities[0] = "mutated"
	if got := p.Snapshot(); got.Capabilities[0] == "mutated" {
		t.Fatalf("Snapshot should return an isolated copy")
	}
}
