package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"logmap/internal/diag"
)

// Write stores doc at path. The file is replaced atomically: the payload
// goes to a temporary file in the same directory which is then renamed.
func Write(ctx context.Context, path string, doc *Document, opts Options) error {
	format, comp, err := opts.resolve(path)
	if err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}
	if doc.Schema == 0 {
		doc.Schema = SchemaVersion
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}
	tmp, err := os.CreateTemp(dir, ".logmap-*.tmp")
	if err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if format == FormatSQLite {
		if err := tmp.Close(); err != nil {
			return diag.Wrap(diag.IOManifest, path, err)
		}
		if err := writeSQLite(ctx, tmpName, doc); err != nil {
			return diag.Wrap(diag.IOManifest, path, err)
		}
	} else if err := writeStream(tmp, doc, format, comp); err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return diag.Wrap(diag.IOManifest, path, err)
	}
	return nil
}

func writeStream(f *os.File, doc *Document, format Format, comp Compression) error {
	w, err := compressWriter(f, comp)
	if err != nil {
		return errors.Join(err, f.Close())
	}
	if err := Encode(w, doc, format); err != nil {
		return errors.Join(err, w.Close(), f.Close())
	}
	if err := w.Close(); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}

// Load reads a manifest written by Write.
func Load(ctx context.Context, path string, opts Options) (*Document, error) {
	format, comp, err := opts.resolve(path)
	if err != nil {
		return nil, diag.Wrap(diag.IOManifest, path, err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, diag.Wrap(diag.IOManifest, path, err)
	}
	if format == FormatSQLite {
		doc, err := readSQLite(ctx, path)
		if err != nil {
			return nil, diag.Wrap(diag.IOManifest, path, err)
		}
		return doc, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, diag.Wrap(diag.IOManifest, path, err)
	}
	defer f.Close()

	r, err := decompressReader(f, comp)
	if err != nil {
		return nil, diag.Wrap(diag.IOManifest, path, err)
	}
	defer r.Close()

	doc, err := Decode(r, format)
	if err != nil {
		return nil, diag.Wrap(diag.IOManifest, path, fmt.Errorf("decoding %s manifest: %w", format, err))
	}
	return doc, nil
}
