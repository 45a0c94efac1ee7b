package callsite

import "testing"

func TestMatchCall(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		ok    bool
		match Match
	}{
		{
			name:  "plain",
			line:  `Logger.Log(LogLevel.Error, "id1");`,
			ok:    true,
			match: Match{Prefix: `Logger.Log(LogLevel.Error, "`, Level: "Error", ID: "id1", Suffix: `");`},
		},
		{
			name:  "indented with args",
			line:  `        Logger.Log( LogLevel.Info ,  "abc", value, other);  // tail`,
			ok:    true,
			match: Match{Prefix: `        Logger.Log( LogLevel.Info ,  "`, Level: "Info", ID: "abc", Suffix: `", value, other);  // tail`},
		},
		{
			name:  "qualified receiver",
			line:  `this.Logger.Log(LogLevel.Debug,"")`,
			ok:    true,
			match: Match{Prefix: `this.Logger.Log(LogLevel.Debug,"`, Level: "Debug", ID: "", Suffix: `")`},
		},
		{
			name:  "unknown level still matches",
			line:  `Logger.Log(LogLevel.Fatal, "x");`,
			ok:    true,
			match: Match{Prefix: `Logger.Log(LogLevel.Fatal, "`, Level: "Fatal", ID: "x", Suffix: `");`},
		},
		{
			name:  "second string literal stays in suffix",
			line:  `Logger.Log(LogLevel.Warning, "id", "text");`,
			ok:    true,
			match: Match{Prefix: `Logger.Log(LogLevel.Warning, "`, Level: "Warning", ID: "id", Suffix: `", "text");`},
		},
		{name: "other call", line: `Console.WriteLine("x");`},
		{name: "no literal", line: `Logger.Log(LogLevel.Info, id);`},
		{name: "blank", line: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MatchCall(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if m != tt.match {
				t.Fatalf("match = %+v, want %+v", m, tt.match)
			}
			if m.Line() != tt.line {
				t.Fatalf("Line() = %q, want %q", m.Line(), tt.line)
			}
		})
	}
}

func TestRewriteKeepsPrefixAndSuffix(t *testing.T) {
	m, ok := MatchCall(`  x = Logger.Log(LogLevel.Info, "old", a); // c`)
	if !ok {
		t.Fatal("no match")
	}
	if got, want := m.Rewrite("new"), `  x = Logger.Log(LogLevel.Info, "new", a); // c`; got != want {
		t.Fatalf("Rewrite = %q, want %q", got, want)
	}
}

func TestMessageMatcher(t *testing.T) {
	mm := NewMessageMatcher("")
	if mm.Marker() != DefaultMarker {
		t.Fatalf("marker = %q", mm.Marker())
	}
	tests := []struct {
		line string
		msg  string
		ok   bool
	}{
		{"// LogMsg hello world", "hello world", true},
		{"    //LogMsg   padded   ", "padded", true},
		{"// LogMsg", "", true},
		{"// NotAMarker hello", "", false},
		{"/* LogMsg block */", "", false},
		{"x := 1 // LogMsg trailing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		msg, ok := mm.Match(tt.line)
		if ok != tt.ok || msg != tt.msg {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.line, msg, ok, tt.msg, tt.ok)
		}
	}

	custom := NewMessageMatcher("Log.Msg")
	if _, ok := custom.Match("// LogxMsg nope"); ok {
		t.Fatal("marker must be matched literally")
	}
	if msg, ok := custom.Match("// Log.Msg yes"); !ok || msg != "yes" {
		t.Fatalf("custom marker: %q %v", msg, ok)
	}
}

func TestParseUpdateMode(t *testing.T) {
	tests := map[string]UpdateMode{
		"None":       UpdateNone,
		"none":       UpdateNone,
		"NonUnique":  UpdateNonUnique,
		"non-unique": UpdateNonUnique,
		"NON_UNIQUE": UpdateNonUnique,
		" all ":      UpdateAll,
	}
	for in, want := range tests {
		got, err := ParseUpdateMode(in)
		if err != nil || got != want {
			t.Errorf("ParseUpdateMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseUpdateMode("some"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	var m UpdateMode
	if err := m.UnmarshalText([]byte("all")); err != nil || m != UpdateAll {
		t.Fatalf("UnmarshalText: %v %v", m, err)
	}
}
