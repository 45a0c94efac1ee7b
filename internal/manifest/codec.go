package manifest

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Encode writes doc to w in a stream format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatXML, FormatAuto:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %s is not a stream format", ErrUnknownFormat, format)
	}
}

// Decode reads a document in a stream format from r.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case FormatXML, FormatAuto:
		err = xml.NewDecoder(r).Decode(doc)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(doc)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(doc)
	default:
		err = fmt.Errorf("%w: %s is not a stream format", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func compressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressZstd:
		return zstd.NewWriter(w)
	case CompressGzip:
		return gzip.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

func decompressReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CompressGzip:
		return gzip.NewReader(r)
	default:
		return io.NopCloser(r), nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
