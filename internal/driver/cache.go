package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"declgen/internal/diag"
	"declgen/internal/source"
)

// Bump when CachePayload changes shape.
const cacheSchemaVersion uint16 = 1

// Digest identifies one document under one configuration.
type Digest [32]byte

// CacheKey hashes document bytes together with the config fingerprint and
// the generator version.
func CacheKey(content [32]byte, fingerprint, version string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Cache stores generated text and diagnostics per document on disk.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the msgpack record for one document.
type CachePayload struct {
	Schema      uint16
	Text        string
	Diagnostics []CachedDiagnostic
	Dropped     int
}

// CachedDiagnostic is a diagnostic without its file binding; the file is
// re-attached on load.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Type     string
	Member   string
	Line     uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Type   string
	Member string
	Line   uint32
	Msg    string
}

// OpenCache uses dir, or $XDG_CACHE_HOME/declgen (~/.cache/declgen) when empty.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(err, "locate cache directory")
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "declgen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache directory %s", dir)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "docs", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically: temp file in the target directory, then rename.
func (c *Cache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "create cache shard")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "create cache temp file")
	}
	tmp := f.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp)
	}()

	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "encode cache payload")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close cache temp file")
	}
	return errors.Wrap(os.Rename(tmp, p), "publish cache entry")
}

// Get loads the payload for key. A missing entry or a schema mismatch is a
// miss, not an error.
func (c *Cache) Get(key Digest) (*CachePayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read cache entry")
	}
	var payload CachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, errors.Wrap(err, "decode cache entry")
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "docs")); err != nil {
		return errors.Wrap(err, "drop cache")
	}
	return nil
}

func toPayload(text string, bag *diag.Bag) *CachePayload {
	p := &CachePayload{Text: text, Dropped: bag.Dropped()}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Type:     d.Subject.Type,
			Member:   d.Subject.Member,
			Line:     d.Subject.Line,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Type: n.Subject.Type, Member: n.Subject.Member, Line: n.Subject.Line, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// diagnostics rebuilds the bag and binds every entry to id.
func (p *CachePayload) diagnostics(max int, id source.FileID) *diag.Bag {
	bag := diag.NewBag(max)
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			diag.Subject{Type: cd.Type, Member: cd.Member, Line: cd.Line}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(diag.Subject{Type: n.Type, Member: n.Member, Line: n.Line}, n.Msg)
		}
		bag.Add(d.WithFile(id))
	}
	return bag
}
