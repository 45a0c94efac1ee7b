package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Template is written by "logmap init".
const Template = `# logmap configuration

[scan]
# Source file extensions to scan.
extensions = [".cs"]
# Regular expressions matched against bare directory names.
exclude = ['^\.', '^bin$', '^obj$']
# Word that introduces a message comment: // LogMsg <text>
marker = "LogMsg"
require_message = false
# None, NonUnique or All.
update = "None"
jobs = 1
atomic = false

[manifest]
path = "logmap.xml"
# auto, xml, json, toml, msgpack or sqlite.
format = "auto"
`

// ErrConfigExists is returned by WriteTemplate when logmap.toml exists.
var ErrConfigExists = errors.New("logmap.toml already exists")

// WriteTemplate creates dir/logmap.toml. An existing file is only
// replaced when force is set.
func WriteTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}
	return path, os.WriteFile(path, []byte(Template), 0o644)
}
