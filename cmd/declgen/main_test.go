package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"declgen/internal/declfile"
	"declgen/internal/diagfmt"
)

const constantsYAML = `
types:
  - name: Test
    members:
      - kind: field
        name: FOO
        type: int
        static: true
        final: true
        constant: "1"
`

const badPropertyTOML = `
[[types]]
name = "FooBar"

  [[types.members]]
  kind = "field"
  name = "fieldBad"
  type = "int"
  property = "bogus"
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(append([]string{"--color", "off"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGenPrintsDeclarations(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Test.yaml")
	writeFile(t, doc, constantsYAML)

	code, stdout, stderr := run(t, "gen", "--project", dir, "--ui", "off", doc)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "#define Test_FOO 1") {
		t.Fatalf("declarations missing from stdout:\n%s", stdout)
	}
}

func TestGenReportsErrors(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "FooBar.toml")
	writeFile(t, doc, badPropertyTOML)

	code, _, stderr := run(t, "gen", "--project", dir, "--ui", "off", doc)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "error[PRP1001]") {
		t.Fatalf("expected PRP1001 in stderr:\n%s", stderr)
	}
	if strings.Contains(stderr, "declgen: ") {
		t.Fatalf("diagnostic failure must not print a Go error:\n%s", stderr)
	}
}

func TestGenWritesOutDir(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Test.yaml")
	writeFile(t, doc, constantsYAML)
	out := filepath.Join(dir, "gen")

	code, stdout, stderr := run(t, "gen", "--project", dir, "--ui", "off", "-o", out, doc)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if stdout != "" {
		t.Fatalf("stdout must stay empty with --out, got:\n%s", stdout)
	}
	data, err := os.ReadFile(filepath.Join(out, "Test.h"))
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if !strings.Contains(string(data), "#define Test_FOO 1") {
		t.Fatalf("unexpected header:\n%s", data)
	}
	if !strings.Contains(stderr, "wrote 1 headers") {
		t.Fatalf("missing write summary:\n%s", stderr)
	}
}

func TestGenUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "declgen.toml"), `
[generate]
inputs = ["decls"]
out_dir = "include"
`)
	writeFile(t, filepath.Join(dir, "decls", "Test.yaml"), constantsYAML)

	code, _, stderr := run(t, "gen", "--project", dir, "--ui", "off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "include", "Test.h")); err != nil {
		t.Fatalf("expected header under out_dir: %v", err)
	}
}

func TestGenRejectsBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "declgen.toml"), "[generate]\njobs = -1\n")

	code, _, stderr := run(t, "gen", "--project", dir, "x.toml")
	if code != 1 || !strings.Contains(stderr, "jobs must be >= 0") {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
}

func TestGenWithoutInputs(t *testing.T) {
	code, _, stderr := run(t, "gen", "--project", t.TempDir())
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "no input documents") || !strings.Contains(stderr, "hint: ") {
		t.Fatalf("expected error with hint:\n%s", stderr)
	}
}

func TestDiagJSON(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "FooBar.toml")
	writeFile(t, doc, badPropertyTOML)

	code, stdout, _ := run(t, "diag", "--project", dir, "--ui", "off", "--format", "json", doc)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if out.Errors != 1 || out.Diagnostics[0].Code != "PRP1001" {
		t.Fatalf("unexpected diagnostics: %+v", out)
	}
	if strings.Contains(stdout, "@interface") {
		t.Fatalf("diag must not print declarations")
	}
}

func TestWarningsAsErrorsFlag(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Test.yaml")
	writeFile(t, doc, `
types:
  - name: Test
    members:
      - kind: field
        name: NAN
        type: double
        static: true
        final: true
        constant: "not-a-number"
`)
	if code, _, stderr := run(t, "diag", "--project", dir, "--ui", "off", doc); code != 0 {
		t.Fatalf("warning alone must not fail, exit %d:\n%s", code, stderr)
	}
	if code, _, _ := run(t, "diag", "--project", dir, "--ui", "off", "--warnings-as-errors", doc); code != 1 {
		t.Fatalf("exit %d, want 1 with --warnings-as-errors", code)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Test.yaml")
	writeFile(t, src, constantsYAML)
	dst := filepath.Join(dir, "Test.toml")

	code, _, stderr := run(t, "convert", "--to", "toml", "-o", dst, src)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc, err := declfile.Decode(declfile.FormatTOML, data)
	if err != nil {
		t.Fatalf("converted document does not decode: %v", err)
	}
	if len(doc.Types) != 1 || doc.Types[0].Name != "Test" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	if code, _, _ := run(t, "convert", "--to", "xml", src); code != 1 {
		t.Fatalf("unknown target format must fail")
	}
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := run(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "declgen" || payload.Version == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestInvalidColor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute([]string{"--color", "sometimes", "version"}, &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "invalid --color value") {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr.String())
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Fatalf("a buffer is not a terminal")
	}
}

func TestRingTraceDumpedOnFailure(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "FooBar.toml")
	writeFile(t, doc, badPropertyTOML)

	code, _, stderr := run(t, "--trace-level", "phase", "gen", "--project", dir, "--ui", "off", doc)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "--- trace (most recent events) ---") || !strings.Contains(stderr, "generate") {
		t.Fatalf("expected ring trace dump:\n%s", stderr)
	}
}

func TestTraceStreamToFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Test.yaml")
	writeFile(t, doc, constantsYAML)
	traceFile := filepath.Join(dir, "run.ndjson")

	code, _, stderr := run(t, "--trace", traceFile, "gen", "--project", dir, "--ui", "off", doc)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	data, err := os.ReadFile(traceFile)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), `"name":"generate"`) {
		t.Fatalf("trace file lacks the driver span:\n%s", data)
	}
}
