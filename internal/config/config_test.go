package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFlagsFromEnvDefaultsFalse(t *testing.T) {
	os.Unsetenv("ROOT_CANONICAL_CODE")
	os.Unsetenv("NO_GENERIC_CODE")
	os.Unsetenv("ONLY_CANONICAL_CODE")
	f := FlagsFromEnv()
	if f.RootCanonicalCode || f.NoGenericCode || f.OnlyCanonicalCode {
		t.Fatalf("expected all flags disabled by default, got %+v", f)
	}
}

func TestFlagsFromEnvRequiresExactlyOne(t *testing.T) {
	t.Setenv("ROOT_CANONICAL_CODE", "true")
	t.Setenv("NO_GENERIC_CODE", "1")
	f := FlagsFromEnv()
	if f.RootCanonicalCode {
		t.Fatalf("only the literal value %q should enable a flag, not %q", "1", "true")
	}
	if !f.NoGenericCode {
		t.Fatalf("expected NoGenericCode enabled")
	}
}

func TestLoadManifestDefaultsPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "naotc.toml")
	content := `
[project]
name = "demo"
entrypoint = "Demo.Program"

[[module]]
name = "System.Private.CoreLib"
path = "corelib.dll"
in_bubble = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Policy != "single_file" {
		t.Fatalf("expected default policy single_file, got %q", m.Project.Policy)
	}
	if len(m.Modules) != 1 || m.Modules[0].Name != "System.Private.CoreLib" {
		t.Fatalf("unexpected modules: %+v", m.Modules)
	}
}

func TestLoadManifestRejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "naotc.toml")
	content := "[project]\nname = \"demo\"\npolicy = \"bogus\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error for an unknown policy")
	}
}

func TestLoadManifestRequiresProjectSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "naotc.toml")
	if err := os.WriteFile(path, []byte("[[module]]\nname=\"x\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error for a missing [project] section")
	}
}
