package project

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"declgen/internal/gen"
	"declgen/internal/names"
)

// ManifestName is the project configuration file looked up from the working directory.
const ManifestName = "declgen.toml"

// ErrInvalidConfig marks manifests that parse but carry unusable values.
var ErrInvalidConfig = errors.New("invalid project configuration")

// Manifest is a located and decoded declgen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors declgen.toml.
type Config struct {
	Generate    GenerateConfig    `toml:"generate"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type GenerateConfig struct {
	StaticAccessorMethods bool     `toml:"static_accessor_methods"`
	CopyableTypes         []string `toml:"copyable_types"`
	Jobs                  int      `toml:"jobs"`
	OutDir                string   `toml:"out_dir"`
	// Inputs are documents or directories relative to the project root.
	Inputs []string `toml:"inputs"`
}

type DiagnosticsConfig struct {
	Max              int    `toml:"max"`
	Format           string `toml:"format"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
}

// Diagnostic output formats accepted in [diagnostics].format.
var Formats = []string{"pretty", "short", "json"}

// Default is used when no manifest is found.
func Default() Config {
	return Config{Diagnostics: DiagnosticsConfig{Format: "pretty"}}
}

// FindManifest walks up from startDir to locate declgen.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing declgen.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadManifest finds and decodes the nearest manifest. ok is false when
// none exists; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.WithHint(
			errors.Mark(errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", ")), ErrInvalidConfig),
			"known sections are [generate] and [diagnostics]")
	}
	if meta.IsDefined("diagnostics", "format") && strings.TrimSpace(cfg.Diagnostics.Format) == "" {
		return Config{}, errors.Mark(errors.Newf("%s: empty [diagnostics].format", path), ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges. Flags run it again after overriding.
func (c Config) Validate() error {
	if c.Generate.Jobs < 0 {
		return errors.Mark(errors.Newf("[generate].jobs must be >= 0, got %d", c.Generate.Jobs), ErrInvalidConfig)
	}
	if c.Diagnostics.Max < 0 {
		return errors.Mark(errors.Newf("[diagnostics].max must be >= 0, got %d", c.Diagnostics.Max), ErrInvalidConfig)
	}
	if !slices.Contains(Formats, c.Diagnostics.Format) {
		return errors.WithHintf(
			errors.Mark(errors.Newf("unknown diagnostics format %q", c.Diagnostics.Format), ErrInvalidConfig),
			"use one of: %s", strings.Join(Formats, ", "))
	}
	for _, typ := range c.Generate.CopyableTypes {
		if !validQualifiedName(typ) {
			return errors.Mark(errors.Newf("[generate].copyable_types: %q is not a qualified type name", typ), ErrInvalidConfig)
		}
	}
	return nil
}

// GenConfig is the emitter configuration derived from the manifest.
func (c Config) GenConfig() gen.Config {
	return gen.Config{
		StaticAccessorMethods: c.Generate.StaticAccessorMethods,
		CopyableTypes:         c.Generate.CopyableTypes,
		MaxDiagnostics:        c.Diagnostics.Max,
	}
}

// OutDir resolves [generate].out_dir against the project root. Empty means
// no output directory was configured.
func (m *Manifest) OutDir() string {
	dir := strings.TrimSpace(m.Config.Generate.OutDir)
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// Inputs resolves [generate].inputs against the project root.
func (m *Manifest) Inputs() []string {
	out := make([]string, 0, len(m.Config.Generate.Inputs))
	for _, in := range m.Config.Generate.Inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		if !filepath.IsAbs(in) {
			in = filepath.Join(m.Root, filepath.FromSlash(in))
		}
		out = append(out, in)
	}
	return out
}

func validQualifiedName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if !names.IsIdentifier(seg) {
			return false
		}
	}
	return true
}
