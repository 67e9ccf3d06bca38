package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const demoManifest = "../../manifest/testdata/demo.yaml"

func TestGenerate_writesScript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.rc")
	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "-manifest", demoManifest, "-out", out, "-parallel"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "// Resource script automatically generated by rcscript.\n") {
		t.Errorf("unexpected script header: %q", data[:40])
	}
	if !strings.Contains(string(data), "#pragma code_page(65001)\n") {
		t.Errorf("code page pragma missing")
	}
	if !strings.Contains(stdout.String(), "wrote") || !strings.Contains(stdout.String(), "2 languages") {
		t.Errorf("unexpected summary %q", stdout.String())
	}
}

func TestGenerate_defaultOutputUsesOutDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OUT_DIR", dir)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"generate", "-manifest", demoManifest}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "demo.rc")); err != nil {
		t.Fatalf("script not written to OUT_DIR: %v", err)
	}
}

func TestGenerate_dump(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "demo.rc")
	if code := run([]string{"generate", "-manifest", demoManifest, "-out", out, "-dump"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "manifest.Manifest") {
		t.Errorf("dump missing from output: %q", stdout.String())
	}
}

func TestGenerate_reportsSkippedResources(t *testing.T) {
	dir := t.TempDir()
	src := "languages: [en-US, de-DE]\nresources:\n  - id: 1\n    menu: [{id: 1, text: {de-DE: Datei}}]\n"
	path := filepath.Join(dir, "m.yaml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"generate", "-manifest", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "MENUEX 1 has no content for language 0x9, 0x1") {
		t.Errorf("skip not reported: %q", stderr.String())
	}
}

func TestGenerate_requiresManifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"generate"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "-manifest is required") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestCheck_reportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	src := "languages: [en-US]\nresources:\n  - id: 1\n    icon: missing.ico\n  - id: 2\n    bitmap: missing.bmp\n  - id: 3\n"
	path := filepath.Join(dir, "m.yaml")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"check", "-manifest", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if n := strings.Count(stderr.String(), "rcgen: "); n != 3 {
		t.Errorf("got %d reported problems, want 3: %s", n, stderr.String())
	}
}

func TestCheck_ok(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"check", "-manifest", "../../manifest/testdata/demo.toml"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "ok") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestCompile_runsTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "demo.rc")
	res := filepath.Join(dir, "demo.res")
	t.Setenv("RCGEN_COMPILER_ARGS", "-c cp\t{in}\t{out}")

	var stdout, stderr bytes.Buffer
	args := []string{"compile", "-manifest", demoManifest, "-out", out, "-res", res, "-compiler", "sh"}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(res); err != nil {
		t.Fatalf("compiled output missing: %v", err)
	}
}

func TestCompile_toolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	t.Setenv("RCGEN_COMPILER_ARGS", "-c exit\t3")
	out := filepath.Join(t.TempDir(), "demo.rc")
	var stdout, stderr bytes.Buffer
	args := []string{"compile", "-manifest", demoManifest, "-out", out, "-compiler", "sh"}
	if code := run(args, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "compile "+out) {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestUnknownSubcommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"frobnicate"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), `unknown subcommand "frobnicate"`) {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"generate", "-h"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RCGEN_LOG_LEVEL", "debug")
	t.Setenv("RCGEN_COMPILER", "windres")
	t.Setenv("RCGEN_COMPILER_ARGS", "-i {in} -o {out}")
	t.Setenv("OUT_DIR", "build")
	cfg, err := loadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" || cfg.Compiler != "windres" || cfg.OutDir != "build" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.CompilerArgs) != 4 || cfg.CompilerArgs[1] != "{in}" {
		t.Errorf("unexpected compiler args %q", cfg.CompilerArgs)
	}
}

func TestNewLogger_rejectsUnknownLevel(t *testing.T) {
	if _, err := newLogger("loud"); err == nil {
		t.Fatal("expected error")
	}
}
