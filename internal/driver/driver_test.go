package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"naotc/internal/objwriter"
	"naotc/internal/tsystem"
)

func writeManifest(t *testing.T, dir, policy string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "naotc.toml")
	content := "[project]\nname = \"demo\"\nentrypoint = \"Demo.Program\"\n"
	if policy != "" {
		content += "policy = \"" + policy + "\"\n"
	}
	content += extra
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCompilesAndEmitsASingleFileProject(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "demo.bin")
	if err := os.WriteFile(modulePath, []byte("demo module bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	extra := "\n[[module]]\nname = \"demo\"\npath = \"" + filepath.ToSlash(modulePath) + "\"\n"
	path := writeManifest(t, dir, "", extra)

	events := make(chan Event, 64)
	writer := &objwriter.FlatWriter{}

	go func() {
		// Drain events so Run never blocks on a full buffer; real
		// callers drive this from a foreground UI goroutine instead.
		for range events {
		}
	}()

	// declareDemoProgram stands in for the metadata decoder this
	// compiler doesn't implement: it builds the one type/method a real
	// decoder would have read out of demo.bin's own tables.
	declareDemoProgram := func(ctx *tsystem.Context, ids []tsystem.ModuleID) error {
		mb := ctx.Builder(ids[0])
		object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
		program := mb.DefType("Demo", "Program", object, false, false, false, 0)
		mb.AddMethod(program, "Main", tsystem.Signature{}, true, false, false, false, tsystem.NoMethodID)
		return nil
	}

	result, err := Run(context.Background(), &Request{
		ManifestPath: path,
		OutputPath:   filepath.Join(dir, "demo.o"),
		Writer:       writer,
		Declare:      declareDemoProgram,
		Progress:     ChannelSink(events),
	})
	close(events)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Compile == nil || len(result.Compile.CompiledMethods) == 0 {
		t.Fatalf("expected at least one compiled method")
	}
	if len(writer.Emitted) != 1 {
		t.Fatalf("expected exactly one EmitObject call, got %d", len(writer.Emitted))
	}
}

func TestRunFailsOnUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "naotc.toml")
	if err := os.WriteFile(path, []byte("[project]\nname=\"demo\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// naotc.toml above is valid (defaults to single_file); make it
	// invalid at the driver layer instead by pointing at a manifest
	// config.LoadManifest itself already rejects.
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[project]\nname=\"demo\"\npolicy=\"bogus\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Run(context.Background(), &Request{ManifestPath: bad}); err == nil {
		t.Fatalf("expected an error for an unparseable manifest")
	}
}

func TestRunWithReadyToRunPolicyRootsEveryPublicMethod(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "lib.bin")
	if err := os.WriteFile(modulePath, []byte("lib module bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	extra := "\n[[module]]\nname = \"lib\"\npath = \"" + filepath.ToSlash(modulePath) + "\"\n"
	path := writeManifest(t, dir, "ready_to_run", extra)

	declareLibrary := func(ctx *tsystem.Context, ids []tsystem.ModuleID) error {
		mb := ctx.Builder(ids[0])
		object := mb.DefType("System", "Object", tsystem.NoTypeID, false, false, false, 0)
		widget := mb.DefType("Lib", "Widget", object, false, false, false, 0)
		mb.AddMethod(widget, "Render", tsystem.Signature{}, false, false, false, false, tsystem.NoMethodID)
		return nil
	}

	writer := &objwriter.FlatWriter{}
	result, err := Run(context.Background(), &Request{
		ManifestPath: path,
		OutputPath:   filepath.Join(dir, "lib.o"),
		Writer:       writer,
		Declare:      declareLibrary,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// ready_to_run has no Main to resolve; every public method of the
	// input module is rooted directly, so Render is live without any
	// entrypoint naming it.
	if result.Compile == nil || len(result.Compile.CompiledMethods) == 0 {
		t.Fatalf("expected Render to be rooted and compiled under ready_to_run, got %+v", result.Compile)
	}
}

func TestRunWithExternalPolicyLoadsButCompilesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "external", "")

	result, err := Run(context.Background(), &Request{ManifestPath: path})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Scan != nil || result.Compile != nil {
		t.Fatalf("expected an external-policy run to skip scan/compile entirely, got %+v", result)
	}
}
