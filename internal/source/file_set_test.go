package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetKeepsVersions(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Example.toml", []byte("package = \"a\""), 0)
	if id1 != 0 {
		t.Fatalf("expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("./Example.toml", []byte("package = \"b\""), 0)
	if id2 != 1 {
		t.Fatalf("expected second FileID to be 1, got %d", id2)
	}
	if got := string(fs.Get(id1).Content); got != "package = \"a\"" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Get(id2).Path != "Example.toml" {
		t.Fatalf("path not normalized: %q", fs.Get(id2).Path)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Fatalf("expected distinct hashes for distinct content")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(3) != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.yaml")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a: 1\r\nb: 2\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a: 1\nb: 2\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if got := f.FormatPath(PathRelative, dir); got != "Foo.yaml" {
		t.Fatalf("relative path = %q", got)
	}
	if got := f.FormatPath(PathBase, ""); got != "Foo.yaml" {
		t.Fatalf("base path = %q", got)
	}
}

func TestLoadKeepsLoneCR(t *testing.T) {
	content, flags := normalizeText([]byte("a\rb\n"))
	if string(content) != "a\rb\n" || flags != 0 {
		t.Fatalf("normalizeText = %q, %b", content, flags)
	}
}

func TestLoadBinaryKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.msgpack")
	content := []byte{0xEF, 0xBB, 0xBF, 0x81, '\r', '\n'}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.LoadBinary(path)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != string(content) {
		t.Fatalf("content rewritten: %q", f.Content)
	}
	if f.Flags != FileBinary {
		t.Fatalf("flags = %b, want FileBinary", f.Flags)
	}
}

func TestConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fs.AddVirtual("mem", []byte{byte(i)})
			if fs.Get(id) == nil {
				t.Errorf("Get(%d) = nil", id)
			}
		}()
	}
	wg.Wait()
	if fs.Len() != 32 {
		t.Fatalf("Len = %d, want 32", fs.Len())
	}
}
