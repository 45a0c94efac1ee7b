package logcall

import (
	"errors"
	"testing"
)

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	ids := []string{"zeta", "alpha", "mid"}
	for i, id := range ids {
		if err := reg.Add(CallInfo{ID: id, FilePath: "a.cs", Line: uint32(i + 1)}); err != nil {
			t.Fatalf("Add(%q) failed: %v", id, err)
		}
	}
	if reg.Len() != len(ids) {
		t.Fatalf("expected %d entries, got %d", len(ids), reg.Len())
	}
	for i, info := range reg.Items() {
		if info.ID != ids[i] {
			t.Errorf("item %d: expected %q, got %q", i, ids[i], info.ID)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Add(CallInfo{ID: "dup", FilePath: "a.cs", Line: 1}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := reg.Add(CallInfo{ID: "dup", FilePath: "b.cs", Line: 7})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("duplicate must not be stored, got %d entries", reg.Len())
	}
	info, ok := reg.Get("dup")
	if !ok || info.FilePath != "a.cs" {
		t.Fatalf("expected first entry to survive, got %+v", info)
	}
}

func TestCallInfoMessage(t *testing.T) {
	info := CallInfo{ID: "x"}
	if info.HasMessage() || info.MessageText() != "" {
		t.Fatal("expected no message")
	}
	info.Message = Message("")
	if !info.HasMessage() {
		t.Fatal("empty message must still count as present")
	}
}

func TestLineNumber(t *testing.T) {
	n, err := LineNumber(0)
	if err != nil || n != 1 {
		t.Fatalf("LineNumber(0) = %d, %v; want 1", n, err)
	}
	if _, err := LineNumber(-2); err == nil {
		t.Fatal("expected overflow error for negative index")
	}
}
