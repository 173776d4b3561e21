package highlight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// Errors returned by grammar loading.
var (
	ErrUnknownFormat  = errors.New("unknown grammar file format")
	ErrInvalidGrammar = errors.New("invalid grammar")
)

// ScriptTimeout bounds the execution time of a Lua grammar script.
const ScriptTimeout = 2 * time.Second

// grammarFile is the on-disk shape shared by the YAML, JSON and Lua formats.
type grammarFile struct {
	Filetype     string   `yaml:"filetype"`
	FileMatch    []string `yaml:"filematch"`
	Keywords     []string `yaml:"keywords"`
	Comment      string   `yaml:"comment"`
	BlockComment struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"block_comment"`
	Numbers bool `yaml:"numbers"`
	Strings bool `yaml:"strings"`
}

func (f grammarFile) grammar() (*Grammar, error) {
	if f.Filetype == "" {
		return nil, fmt.Errorf("%w: missing filetype", ErrInvalidGrammar)
	}
	if len(f.FileMatch) == 0 {
		return nil, fmt.Errorf("%w: %s: no filematch patterns", ErrInvalidGrammar, f.Filetype)
	}
	if (f.BlockComment.Start == "") != (f.BlockComment.End == "") {
		return nil, fmt.Errorf("%w: %s: block comment needs both start and end", ErrInvalidGrammar, f.Filetype)
	}
	g := &Grammar{
		Filetype:          f.Filetype,
		FileMatch:         f.FileMatch,
		Keywords:          f.Keywords,
		SingleLineComment: f.Comment,
		BlockCommentStart: f.BlockComment.Start,
		BlockCommentEnd:   f.BlockComment.End,
	}
	if f.Numbers {
		g.Flags |= HighlightNumbers
	}
	if f.Strings {
		g.Flags |= HighlightStrings
	}
	return g, nil
}

// IsGrammarFile reports whether path has a supported grammar extension.
func IsGrammarFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".lua":
		return true
	}
	return false
}

// LoadFile parses the grammars defined in a single file. YAML and JSON
// files define one grammar; Lua scripts may define several.
func LoadFile(path string) ([]*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", path, err)
	}

	var grammars []*Grammar
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		g, perr := ParseYAML(data)
		if perr == nil {
			grammars = []*Grammar{g}
		}
		err = perr
	case ".json":
		g, perr := ParseJSON(data)
		if perr == nil {
			grammars = []*Grammar{g}
		}
		err = perr
	case ".lua":
		grammars, err = ParseLua(context.Background(), path, string(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading grammar %s: %w", path, err)
	}
	return grammars, nil
}

// LoadDir registers every grammar file found directly inside dir, in
// lexical filename order. A missing directory is not an error. Files that
// fail to load are skipped and their errors joined into the result.
func LoadDir(r *Registry, dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading grammar dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && IsGrammarFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var errs []error
	loaded := 0
	for _, name := range names {
		grammars, lerr := LoadFile(filepath.Join(dir, name))
		if lerr != nil {
			errs = append(errs, lerr)
			continue
		}
		for _, g := range grammars {
			r.Register(g)
			loaded++
		}
	}
	return loaded, errors.Join(errs...)
}

// ParseYAML parses a grammar from YAML.
func ParseYAML(data []byte) (*Grammar, error) {
	var f grammarFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrammar, err)
	}
	return f.grammar()
}

// ParseJSON parses a grammar from JSON.
func ParseJSON(data []byte) (*Grammar, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidGrammar)
	}
	doc := gjson.ParseBytes(data)

	var f grammarFile
	f.Filetype = doc.Get("filetype").String()
	f.FileMatch = jsonStrings(doc.Get("filematch"))
	f.Keywords = jsonStrings(doc.Get("keywords"))
	f.Comment = doc.Get("comment").String()
	f.BlockComment.Start = doc.Get("block_comment.start").String()
	f.BlockComment.End = doc.Get("block_comment.end").String()
	f.Numbers = doc.Get("numbers").Bool()
	f.Strings = doc.Get("strings").Bool()
	return f.grammar()
}

func jsonStrings(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	arr := res.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}

// ExportJSON renders g in the JSON grammar file format.
func ExportJSON(g *Grammar) (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("filetype", g.Filetype)
	set("filematch", g.FileMatch)
	set("keywords", g.Keywords)
	if g.SingleLineComment != "" {
		set("comment", g.SingleLineComment)
	}
	if g.BlockCommentStart != "" {
		set("block_comment.start", g.BlockCommentStart)
		set("block_comment.end", g.BlockCommentEnd)
	}
	set("numbers", g.Flags.Has(HighlightNumbers))
	set("strings", g.Flags.Has(HighlightStrings))
	if err != nil {
		return "", fmt.Errorf("exporting grammar %s: %w", g.Filetype, err)
	}
	return doc, nil
}

// ParseLua runs a grammar script. The script calls the global function
// grammar{...} once per grammar it defines. Only the base, table, string
// and math libraries are available to the script.
func ParseLua(ctx context.Context, name, src string) ([]*Grammar, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// The base library exposes file loaders.
	for _, fn := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(fn, lua.LNil)
	}

	ctx, cancel := context.WithTimeout(ctx, ScriptTimeout)
	defer cancel()
	L.SetContext(ctx)

	var (
		grammars []*Grammar
		defErr   error
	)
	L.SetGlobal("grammar", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		g, err := luaGrammar(tbl).grammar()
		if err != nil {
			if defErr == nil {
				defErr = err
			}
			return 0
		}
		grammars = append(grammars, g)
		return 0
	}))

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGrammar, name, err)
	}
	if defErr != nil {
		return nil, defErr
	}
	if len(grammars) == 0 {
		return nil, fmt.Errorf("%w: %s defines no grammar", ErrInvalidGrammar, name)
	}
	return grammars, nil
}

func luaGrammar(tbl *lua.LTable) grammarFile {
	var f grammarFile
	f.Filetype = lua.LVAsString(tbl.RawGetString("filetype"))
	f.FileMatch = luaStrings(tbl.RawGetString("filematch"))
	f.Keywords = luaStrings(tbl.RawGetString("keywords"))
	f.Comment = lua.LVAsString(tbl.RawGetString("comment"))
	if bc, ok := tbl.RawGetString("block_comment").(*lua.LTable); ok {
		f.BlockComment.Start = lua.LVAsString(bc.RawGetString("start"))
		f.BlockComment.End = lua.LVAsString(bc.RawGetString("end"))
	}
	f.Numbers = lua.LVAsBool(tbl.RawGetString("numbers"))
	f.Strings = lua.LVAsBool(tbl.RawGetString("strings"))
	return f
}

func luaStrings(v lua.LValue) []string {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		if s, ok := t.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}
