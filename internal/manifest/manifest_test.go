package manifest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"logmap/internal/diag"
	"logmap/internal/logcall"
)

func sampleRegistry(t *testing.T) *logcall.Registry {
	t.Helper()
	reg := logcall.NewRegistry()
	for _, info := range []logcall.CallInfo{
		{ID: "b-first", Level: logcall.LevelError, Message: logcall.Message("disk <full> & \"quoted\""), FilePath: "src/a.cs", Line: 3},
		{ID: "a-second", Level: logcall.LevelDebug, FilePath: "src/a.cs", Line: 10},
		{ID: "c-empty", Level: logcall.LevelWarning, Message: logcall.Message(""), FilePath: "lib/ü.cs", Line: 1},
	} {
		if err := reg.Add(info); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func TestRoundTripAllFormats(t *testing.T) {
	names := []string{
		"map.xml",
		"map.json",
		"map.toml",
		"map.msgpack",
		"map.db",
		"map.xml.zst",
		"map.json.gz",
		"map.mp.zst",
		"map.custom",
	}
	reg := sampleRegistry(t)
	want := reg.Items()
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Write(context.Background(), path, FromRegistry(reg), Options{}); err != nil {
				t.Fatalf("Write: %v", err)
			}
			doc, err := Load(context.Background(), path, Options{})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if doc.Schema != SchemaVersion {
				t.Fatalf("schema = %d", doc.Schema)
			}
			back, err := doc.Registry()
			if err != nil {
				t.Fatal(err)
			}
			if got := back.Items(); !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestXMLShape(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FromRegistry(sampleRegistry(t)), FormatXML); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<LogCalls",
		"<CallInfo>",
		"<Id>b-first</Id>",
		"<Level>Error</Level>",
		"<FilePath>src/a.cs</FilePath>",
		"<Line>3</Line>",
		"<Message></Message>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("xml missing %q:\n%s", want, out)
		}
	}
	second := out[strings.Index(out, "<Id>a-second</Id>"):]
	second = second[:strings.Index(second, "</CallInfo>")]
	if strings.Contains(second, "<Message") {
		t.Fatalf("nil message must be omitted:\n%s", second)
	}
}

func TestEmptyRegistry(t *testing.T) {
	for _, name := range []string{"e.xml", "e.json", "e.toml", "e.msgpack", "e.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Write(context.Background(), path, FromRegistry(logcall.NewRegistry()), Options{}); err != nil {
				t.Fatal(err)
			}
			doc, err := Load(context.Background(), path, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if len(doc.Calls) != 0 {
				t.Fatalf("calls = %+v", doc.Calls)
			}
		})
	}
}

func TestExplicitFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.out")
	opts := Options{Format: FormatJSON}
	if err := Write(context.Background(), path, FromRegistry(sampleRegistry(t)), opts); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		t.Fatalf("expected JSON, got %q", raw[:20])
	}
	if _, err := Load(context.Background(), path, opts); err != nil {
		t.Fatal(err)
	}
}

func TestWriteReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.xml")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Write(context.Background(), path, FromRegistry(sampleRegistry(t)), Options{}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
	doc, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Find("c-empty"); !ok {
		t.Fatal("record not found")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(context.Background(), filepath.Join(dir, "missing.xml"), Options{})
	if !errors.Is(err, diag.ErrIO) {
		t.Fatalf("expected IO error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), bad, Options{}); err == nil {
		t.Fatal("expected decode error")
	}

	if err := Write(context.Background(), filepath.Join(dir, "x.db.zst"), &Document{}, Options{}); err == nil {
		t.Fatal("compressed sqlite must be rejected")
	}
}

func TestRecordWithUnknownLevel(t *testing.T) {
	doc := &Document{Calls: []Record{{ID: "x", Level: "Fatal"}}}
	if _, err := doc.Registry(); !errors.Is(err, logcall.ErrUnknownLevel) {
		t.Fatalf("expected level error, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		comp   Compression
	}{
		{"a.xml", FormatXML, CompressNone},
		{"A.JSON", FormatJSON, CompressNone},
		{"dir.v1/a", FormatXML, CompressNone},
		{"a.toml.gz", FormatTOML, CompressGzip},
		{"a.mp.zst", FormatMsgpack, CompressZstd},
		{"a.sqlite3", FormatSQLite, CompressNone},
	}
	for _, tt := range tests {
		f, c := Detect(tt.path)
		if f != tt.format || c != tt.comp {
			t.Errorf("Detect(%q) = %s/%s, want %s/%s", tt.path, f, c, tt.format, tt.comp)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected unknown format, got %v", err)
	}
}
