package highlight

import (
	"sort"

	"github.com/dshills/onree/internal/renderer/core"
)

// Theme maps highlight classes to display styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Foreground is the default text color.
	Foreground core.Color

	// Background is the editor background color.
	Background core.Color

	// ClassStyles maps highlight classes to their styles.
	ClassStyles map[Class]core.Style
}

// StyleFor returns the style for a highlight class.
func (t *Theme) StyleFor(c Class) core.Style {
	if style, ok := t.ClassStyles[c]; ok {
		return style
	}
	return core.Style{
		Foreground: t.Foreground,
		Background: t.Background,
	}
}

// DefaultTheme returns the basic ANSI palette theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "default",
		Foreground: core.ColorWhite,
		Background: core.ColorDefault,
		ClassStyles: map[Class]core.Style{
			ClassNormal:    core.NewStyle(core.ColorWhite),
			ClassComment:   core.NewStyle(core.ColorCyan),
			ClassMLComment: core.NewStyle(core.ColorCyan),
			ClassKeyword1:  core.NewStyle(core.ColorYellow),
			ClassKeyword2:  core.NewStyle(core.ColorGreen),
			ClassString:    core.NewStyle(core.ColorMagenta),
			ClassNumber:    core.NewStyle(core.ColorRed),
			ClassMatch:     core.NewStyle(core.ColorBlue),
		},
	}
}

// MonokaiTheme returns a Monokai-inspired true color theme.
func MonokaiTheme() *Theme {
	bg := core.ColorFromRGB(39, 40, 34)
	fg := core.ColorFromRGB(248, 248, 242)
	comment := core.ColorFromRGB(117, 113, 94)
	yellow := core.ColorFromRGB(230, 219, 116)
	pink := core.ColorFromRGB(249, 38, 114)
	cyan := core.ColorFromRGB(102, 217, 239)
	purple := core.ColorFromRGB(174, 129, 255)

	return &Theme{
		Name:       "monokai",
		Foreground: fg,
		Background: bg,
		ClassStyles: map[Class]core.Style{
			ClassNormal:    core.NewStyle(fg).WithBackground(bg),
			ClassComment:   core.NewStyle(comment).WithBackground(bg).Italic(),
			ClassMLComment: core.NewStyle(comment).WithBackground(bg).Italic(),
			ClassKeyword1:  core.NewStyle(pink).WithBackground(bg),
			ClassKeyword2:  core.NewStyle(cyan).WithBackground(bg).Italic(),
			ClassString:    core.NewStyle(yellow).WithBackground(bg),
			ClassNumber:    core.NewStyle(purple).WithBackground(bg),
			ClassMatch:     core.NewStyle(bg).WithBackground(bg.Blend(yellow, 0.8)),
		},
	}
}

// DraculaTheme returns a Dracula-inspired true color theme.
func DraculaTheme() *Theme {
	bg := core.ColorFromRGB(40, 42, 54)
	fg := core.ColorFromRGB(248, 248, 242)
	comment := core.ColorFromRGB(98, 114, 164)
	green := core.ColorFromRGB(80, 250, 123)
	pink := core.ColorFromRGB(255, 121, 198)
	cyan := core.ColorFromRGB(139, 233, 253)
	purple := core.ColorFromRGB(189, 147, 249)
	yellow := core.ColorFromRGB(241, 250, 140)

	return &Theme{
		Name:       "dracula",
		Foreground: fg,
		Background: bg,
		ClassStyles: map[Class]core.Style{
			ClassNormal:    core.NewStyle(fg).WithBackground(bg),
			ClassComment:   core.NewStyle(comment).WithBackground(bg),
			ClassMLComment: core.NewStyle(comment).WithBackground(bg),
			ClassKeyword1:  core.NewStyle(pink).WithBackground(bg).Bold(),
			ClassKeyword2:  core.NewStyle(cyan).WithBackground(bg).Italic(),
			ClassString:    core.NewStyle(yellow).WithBackground(bg),
			ClassNumber:    core.NewStyle(purple).WithBackground(bg),
			ClassMatch:     core.NewStyle(bg).WithBackground(bg.Blend(green, 0.75)),
		},
	}
}

// ThemeRegistry holds available themes.
type ThemeRegistry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewThemeRegistry creates a new theme registry with built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{
		themes: make(map[string]*Theme),
	}

	r.Register(DefaultTheme())
	r.Register(MonokaiTheme())
	r.Register(DraculaTheme())

	r.current = r.themes["default"]

	return r
}

// Register adds a theme to the registry.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[theme.Name] = theme
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the current theme.
func (r *ThemeRegistry) Current() *Theme {
	return r.current
}

// SetCurrent sets the current theme by name.
func (r *ThemeRegistry) SetCurrent(name string) bool {
	if t, ok := r.themes[name]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns all registered theme names, sorted.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
