package declfile

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for files whose extension has no codec.
	ErrUnknownFormat = errors.New("unknown declaration document format")
	// ErrDecode marks malformed documents.
	ErrDecode = errors.New("malformed declaration document")
)

// Format names a document encoding.
type Format string

const (
	FormatTOML    Format = "toml"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatJSON    Format = "json"
)

type codec struct {
	decode func(data []byte, doc *Document) error
	encode func(doc *Document) ([]byte, error)
}

var codecs = map[Format]codec{
	FormatTOML:    {decode: decodeTOML, encode: encodeTOML},
	FormatYAML:    {decode: decodeYAML, encode: encodeYAML},
	FormatMsgpack: {decode: decodeMsgpack, encode: encodeMsgpack},
	FormatJSON:    {decode: decodeJSON, encode: encodeJSON},
}

var extensions = map[string]Format{
	".toml":    FormatTOML,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".msgpack": FormatMsgpack,
	".mp":      FormatMsgpack,
	".json":    FormatJSON,
}

// FormatOf picks the codec by file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.WithHintf(errors.Wrapf(ErrUnknownFormat, "%s", path),
		"supported extensions: %s", strings.Join(Extensions(), ", "))
}

// Extensions lists recognized file extensions, sorted.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// IsDocument reports whether path has a recognized extension.
func IsDocument(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode parses data in the given format. Unknown keys are rejected.
func Decode(format Format, data []byte) (*Document, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	var doc Document
	if err := c.decode(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s", format), ErrDecode)
	}
	return &doc, nil
}

// Encode serializes doc in the given format.
func Encode(format Format, doc *Document) ([]byte, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	data, err := c.encode(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", format)
	}
	return data, nil
}

func decodeTOML(data []byte, doc *Document) error {
	meta, err := toml.Decode(string(data), doc)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Newf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func encodeTOML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(doc)
}

func encodeYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeMsgpack(data []byte, doc *Document) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields(true)
	return dec.Decode(doc)
}

func encodeMsgpack(doc *Document) ([]byte, error) {
	return msgpack.Marshal(doc)
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(doc)
}

func encodeJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
