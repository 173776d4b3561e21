package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func getByPath(m map[string]any, path string) (any, bool) {
	current := any(m)
	for _, part := range strings.Split(path, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func TestTOMLLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[editor]
tabStop = 4
messageTimeout = "3s"

[ui]
theme = "monokai"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := NewTOMLLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "editor.tabStop"); !ok || val != int64(4) {
		t.Errorf("editor.tabStop = %v (%T), want 4", val, val)
	}
	if val, ok := getByPath(config, "editor.messageTimeout"); !ok || val != "3s" {
		t.Errorf("editor.messageTimeout = %v, want 3s", val)
	}
	if val, ok := getByPath(config, "ui.theme"); !ok || val != "monokai" {
		t.Errorf("ui.theme = %v, want monokai", val)
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	config, err := NewTOMLLoader(filepath.Join(t.TempDir(), "nope.toml")).Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[editor\ntabStop = 4"))
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *ParseError", err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 1 {
		t.Errorf("Line = %d, want 1", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 1") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("ONREE_TAB_STOP", "2")
	t.Setenv("ONREE_THEME", "dracula")
	t.Setenv("ONREE_LOG_LEVEL", "debug")
	t.Setenv("ONREE_MESSAGE_TIMEOUT", "10s")
	t.Setenv("ONREE_MATCH_COLOR", "#336699")

	config, err := NewEnvLoader("ONREE_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "editor.tabStop"); !ok || val != int64(2) {
		t.Errorf("editor.tabStop = %v (%T), want 2", val, val)
	}
	if val, ok := getByPath(config, "ui.theme"); !ok || val != "dracula" {
		t.Errorf("ui.theme = %v, want dracula", val)
	}
	if val, ok := getByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want debug", val)
	}
	if val, ok := getByPath(config, "editor.messageTimeout"); !ok || val != "10s" {
		t.Errorf("editor.messageTimeout = %v, want 10s", val)
	}
	if val, ok := getByPath(config, "ui.matchColor"); !ok || val != "#336699" {
		t.Errorf("ui.matchColor = %v, want #336699", val)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("ONREE_EDITOR_QUIT_TIMES", "5")
	t.Setenv("ONREE_LONELY", "ignored")

	config, err := NewEnvLoader("ONREE_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "editor.quitTimes"); !ok || val != int64(5) {
		t.Errorf("editor.quitTimes = %v, want 5", val)
	}
	if _, ok := config["lonely"]; ok {
		t.Error("variables without a section should be skipped")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("ONREE_")

	tests := []struct {
		env      string
		expected string
	}{
		{"ONREE_EDITOR_TAB_STOP", "editor.tabStop"},
		{"ONREE_UI_THEME", "ui.theme"},
		{"ONREE_SIMPLE", "simple"},
		{"ONREE_LOGGING_MAX_BACKUPS", "logging.maxBackups"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"42", int64(42)},
		{"-1", int64(-1)},
		{"1", int64(1)},
		{"true", true},
		{"Off", false},
		{"5s", "5s"},
		{"monokai", "monokai"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabStop": 8, "quitTimes": 3},
		"ui":     map[string]any{"theme": "default"},
	}
	src := map[string]any{
		"editor": map[string]any{"tabStop": int64(4)},
		"extra":  "x",
	}

	got := DeepMerge(dst, src)

	if val, _ := getByPath(got, "editor.tabStop"); val != int64(4) {
		t.Errorf("editor.tabStop = %v, want 4", val)
	}
	if val, _ := getByPath(got, "editor.quitTimes"); val != 3 {
		t.Errorf("editor.quitTimes = %v, want 3", val)
	}
	if val, _ := getByPath(got, "ui.theme"); val != "default" {
		t.Errorf("ui.theme = %v", val)
	}
	if got["extra"] != "x" {
		t.Errorf("extra = %v", got["extra"])
	}

	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"a": map[string]any{"b": []any{1, map[string]any{"c": 2}}},
	}
	dst := Clone(src)

	dst["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"] = 3
	if val := src["a"].(map[string]any)["b"].([]any)[1].(map[string]any)["c"]; val != 2 {
		t.Errorf("Clone shares nested state: %v", val)
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
