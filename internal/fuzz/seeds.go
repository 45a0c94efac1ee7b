package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var builtinSeeds = []string{
	``,
	`Logger.Log(LogLevel.Info, "abc");`,
	`    Logger.Log( LogLevel.Error ,  "x-1" , ex);`,
	`Logger.Log(LogLevel.Warning, "");`,
	`Logger.Log(LogLevel.Verbose, "id");`,
	`Logger.Log(LogLevel.Info, "a"); Logger.Log(LogLevel.Debug, "b");`,
	"// LogMsg hello\nLogger.Log(LogLevel.Info, \"dup\");\n// LogMsg again\nLogger.Log(LogLevel.Info, \"dup\");",
	"//LogMsg   spaced   \r\n\tLogger.Log(LogLevel.Debug,\"crlf\");\r\n",
	"// LogMsg broken\n\nLogger.Log(LogLevel.Info, \"gap\");",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add(s)
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every .cs file under testdata/seeds.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cs" {
			return nil
		}
		// #nosec G304 -- path comes from the testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(string(src)))
		return nil
	})
}

func clampSeed(src string) string {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}

func splitInput(input string) []string {
	return strings.Split(clampSeed(input), "\n")
}
