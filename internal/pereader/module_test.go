package pereader

import "testing"

func TestReadRVAExactBounds(t *testing.T) {
	m := NewModule("Test.Module")
	m.AddSection(".rdata", 0x2000, make([]byte, 64))
	data, err := m.ReadRVA(0x2000, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("got %d bytes, want 8", len(data))
	}
}

func TestReadRVAOverrunIsBadImageFormat(t *testing.T) {
	m := NewModule("Test.Module")
	m.AddSection(".rdata", 0x2000, make([]byte, 4))
	_, err := m.ReadRVA(0x2000, 8)
	if err == nil {
		t.Fatal("expected ErrBadImageFormat, got nil")
	}
	if _, ok := err.(*ErrBadImageFormat); !ok {
		t.Fatalf("expected *ErrBadImageFormat, got %T", err)
	}
}

func TestReadRVAOutsideAnySection(t *testing.T) {
	m := NewModule("Test.Module")
	m.AddSection(".rdata", 0x2000, make([]byte, 64))
	if _, err := m.ReadRVA(0x9000, 4); err == nil {
		t.Fatal("expected error for rva outside any section")
	}
}
