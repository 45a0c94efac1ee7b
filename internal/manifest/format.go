package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a manifest encoding.
type Format uint8

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatXML
	FormatJSON
	FormatTOML
	FormatMsgpack
	FormatSQLite
)

// Compression wraps stream formats.
type Compression uint8

const (
	CompressNone Compression = iota
	CompressZstd
	CompressGzip
)

// ErrUnknownFormat is returned for unsupported format names or extensions.
var ErrUnknownFormat = errors.New("unknown manifest format")

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatMsgpack:
		return "msgpack"
	case FormatSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

func (c Compression) String() string {
	switch c {
	case CompressZstd:
		return "zstd"
	case CompressGzip:
		return "gzip"
	default:
		return "none"
	}
}

// ParseFormat parses a format name as accepted by --format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Detect infers format and compression from path. Unknown extensions
// select XML.
func Detect(path string) (Format, Compression) {
	name := strings.ToLower(filepath.Base(path))
	comp := CompressNone
	switch {
	case strings.HasSuffix(name, ".zst"):
		comp = CompressZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".gz"):
		comp = CompressGzip
		name = strings.TrimSuffix(name, ".gz")
	}
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, comp
	case ".toml":
		return FormatTOML, comp
	case ".msgpack", ".mp":
		return FormatMsgpack, comp
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, comp
	default:
		return FormatXML, comp
	}
}

// Options selects the encoding of a manifest file.
type Options struct {
	Format Format
}

func (o Options) resolve(path string) (Format, Compression, error) {
	format, comp := Detect(path)
	if o.Format != FormatAuto {
		format = o.Format
	}
	if format == FormatSQLite && comp != CompressNone {
		return format, comp, fmt.Errorf("%w: sqlite manifests cannot be %s compressed", ErrUnknownFormat, comp)
	}
	return format, comp, nil
}
