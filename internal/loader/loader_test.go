package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"naotc/internal/config"
	"naotc/internal/tsystem"
)

func TestLoadAllRegistersModulesInManifestOrder(t *testing.T) {
	dir := t.TempDir()
	var entries []config.ModuleEntry
	for _, name := range []string{"First", "Second", "Third"} {
		path := filepath.Join(dir, name+".dll")
		if err := os.WriteFile(path, []byte("bytes-of-"+name), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		entries = append(entries, config.ModuleEntry{Name: name, Path: path})
	}

	ctx := tsystem.NewContext()
	ids, err := LoadAll(context.Background(), ctx, entries, 2)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 module IDs, got %d", len(ids))
	}
	for i, name := range []string{"First", "Second", "Third"} {
		md := ctx.Module(ids[i])
		if md.Name != name {
			t.Fatalf("module %d: expected name %q, got %q", i, name, md.Name)
		}
		data, err := md.FieldRVAData(0, len("bytes-of-"+name))
		if err != nil {
			t.Fatalf("FieldRVAData: %v", err)
		}
		if string(data) != "bytes-of-"+name {
			t.Fatalf("module %d: unexpected backing bytes %q", i, data)
		}
	}
}

func TestLoadAllRegistersDeclarativeModuleWithNoPath(t *testing.T) {
	ctx := tsystem.NewContext()
	ids, err := LoadAll(context.Background(), ctx, []config.ModuleEntry{{Name: "Synthetic"}}, 1)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	md := ctx.Module(ids[0])
	if md.Name != "Synthetic" || md.Reader != nil {
		t.Fatalf("expected a reader-less module named Synthetic, got %+v", md)
	}
}

func TestLoadAllFailsOnMissingFile(t *testing.T) {
	ctx := tsystem.NewContext()
	_, err := LoadAll(context.Background(), ctx, []config.ModuleEntry{{Name: "Missing", Path: "/no/such/file"}}, 1)
	if err == nil {
		t.Fatalf("expected an error for a missing module file")
	}
}
