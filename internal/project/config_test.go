package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"logmap/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, ConfigName) {
		t.Fatalf("path = %q", path)
	}
	if err := os.Mkdir(filepath.Join(nested, ConfigName), 0o755); err != nil {
		t.Fatal(err)
	}
	if path, _, _ = FindConfig(nested); path != filepath.Join(root, ConfigName) {
		t.Fatalf("directory named %s must be skipped, got %q", ConfigName, path)
	}
}

func TestLoadConfigOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName)
	writeFile(t, path, `
[scan]
exclude = ["^build$"]
update = "NonUnique"
require_message = true

[manifest]
path = "out/calls.json"
`)
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg := loaded.Config
	if !reflect.DeepEqual(cfg.Scan.Exclude, []string{"^build$"}) {
		t.Fatalf("exclude = %v", cfg.Scan.Exclude)
	}
	if !reflect.DeepEqual(cfg.Scan.Extensions, []string{".cs"}) {
		t.Fatalf("extensions = %v", cfg.Scan.Extensions)
	}
	if cfg.Scan.Update != "NonUnique" || !cfg.Scan.RequireMessage || cfg.Scan.Marker != "LogMsg" {
		t.Fatalf("scan = %+v", cfg.Scan)
	}
	if want := filepath.Join(dir, "out", "calls.json"); cfg.Manifest.Path != want {
		t.Fatalf("manifest path = %q, want %q", cfg.Manifest.Path, want)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[scan]\nfoo = 1\n",
		"bad mode":       "[scan]\nupdate = \"sometimes\"\n",
		"bad filter":     "[scan]\nexclude = [\"(\"]\n",
		"bad format":     "[manifest]\nformat = \"yaml\"\n",
		"empty manifest": "[manifest]\npath = \"\"\n",
		"not toml":       "[scan\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, content)
			_, err := LoadConfig(path)
			if !errors.Is(err, diag.ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}

func TestTemplateIsValidConfig(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTemplate(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	def := Default()
	if !reflect.DeepEqual(loaded.Config.Scan, def.Scan) {
		t.Fatalf("template scan = %+v, default %+v", loaded.Config.Scan, def.Scan)
	}
	if _, err := WriteTemplate(dir, false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if _, err := WriteTemplate(dir, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "LOGMAP_UPDATE=All\nLOGMAP_MAP=from-dotenv.xml\nUNRELATED=1\n")
	t.Setenv(EnvMap, "from-env.json")
	t.Setenv(EnvRequireMessage, "true")

	env, err := LoadEnv(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := env["UNRELATED"]; ok {
		t.Fatal("unrelated keys must be ignored")
	}
	cfg := Default()
	if err := cfg.ApplyEnv(env); err != nil {
		t.Fatal(err)
	}
	if cfg.Scan.Update != "All" || cfg.Manifest.Path != "from-env.json" || !cfg.Scan.RequireMessage {
		t.Fatalf("cfg = %+v", cfg)
	}

	bad := Default()
	if err := bad.ApplyEnv(map[string]string{EnvRequireMessage: "maybe"}); err == nil {
		t.Fatal("expected bool parse error")
	}
}

func TestLoadEnvWithoutDotenv(t *testing.T) {
	env, err := LoadEnv(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range envKeys {
		if _, set := os.LookupEnv(k); !set {
			if _, ok := env[k]; ok {
				t.Fatalf("%s unexpectedly set", k)
			}
		}
	}
}

func TestHashLinesIgnoresTerminatorsOnly(t *testing.T) {
	a := HashLines([]string{"a", "b"})
	if a != HashLines([]string{"a", "b"}) {
		t.Fatal("hash must be deterministic")
	}
	if a == HashLines([]string{"ab"}) {
		t.Fatal("line boundaries must affect the hash")
	}
	if Combine(a) == Combine(a, a) {
		t.Fatal("combine must include parts")
	}
	if a.IsZero() || !(Digest{}).IsZero() {
		t.Fatal("IsZero mismatch")
	}
	if len(a.Short()) != 16 {
		t.Fatalf("Short() = %q", a.Short())
	}
}
