// Package theme loads the color themes of the shell from embedded YAML files and turns
// them into lipgloss styles.
package theme

import (
	"embed"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"chepyshell/internal/logger"
	"chepyshell/internal/output"
)

//go:embed themes/*.yaml
var themeFS embed.FS

// Style roles used by the shell.
const (
	RoleName              = "name"
	RoleFile              = "file"
	RoleRPrompt           = "rprompt"
	RoleCompletionCurrent = "completion_current"
	RoleCompletionMeta    = "completion_meta"
	RoleChainBreak        = "chain_break"
	RoleError             = "error"
	RoleWarning           = "warning"
	RoleInfo              = "info"
	RoleSuccess           = "success"
	RoleHighlight         = "highlight"
	RoleResult            = "result"
)

// Default and Plain are the names of the built-in themes.
const (
	Default = "default"
	Plain   = "plain"
)

// StyleConfig is the YAML form of one style.
type StyleConfig struct {
	Foreground    any   `yaml:"foreground,omitempty"`
	Background    any   `yaml:"background,omitempty"`
	Bold          *bool `yaml:"bold,omitempty"`
	Italic        *bool `yaml:"italic,omitempty"`
	Underline     *bool `yaml:"underline,omitempty"`
	Strikethrough *bool `yaml:"strikethrough,omitempty"`
}

// File is the YAML form of a theme.
type File struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]StyleConfig `yaml:"styles"`
}

// Options controls how styles are rendered.
type Options struct {
	Profile        termenv.Profile
	DarkBackground bool
}

// Theme is a set of styles keyed by role. It implements output.StyleProvider.
type Theme struct {
	Name     string
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
	dark     bool
}

var _ output.StyleProvider = (*Theme)(nil)

// Available returns the names of the built-in themes.
func Available() []string {
	entries, err := themeFS.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load parses the built-in theme called name.
func Load(name string, opts Options) (*Theme, error) {
	data, err := themeFS.ReadFile(path.Join("themes", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return Parse(data, opts)
}

// Parse builds a theme from YAML.
func Parse(data []byte, opts Options) (*Theme, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(opts.Profile)
	renderer.SetHasDarkBackground(opts.DarkBackground)

	t := &Theme{
		Name:     file.Name,
		renderer: renderer,
		styles:   make(map[string]lipgloss.Style, len(file.Styles)),
		dark:     opts.DarkBackground,
	}
	for role, cfg := range file.Styles {
		t.styles[role] = t.createStyle(cfg)
	}
	return t, nil
}

// Resolve loads name, falling back to the plain theme when the terminal has no colors
// or the theme cannot be loaded.
func Resolve(name string, opts Options) *Theme {
	if opts.Profile == termenv.Ascii {
		name = Plain
	}

	t, err := Load(name, opts)
	if err == nil {
		return t
	}
	logger.Debug("Invalid theme requested, using plain theme", "theme", name, "available", Available(), "error", err)

	t, err = Load(Plain, opts)
	if err != nil {
		// the plain theme is embedded; this only happens with a broken build
		return &Theme{Name: Plain, renderer: lipgloss.NewRenderer(io.Discard), styles: map[string]lipgloss.Style{}}
	}
	return t
}

func (t *Theme) createStyle(cfg StyleConfig) lipgloss.Style {
	style := t.renderer.NewStyle()

	if c := parseColor(cfg.Foreground); c != nil {
		style = style.Foreground(c)
	}
	if c := parseColor(cfg.Background); c != nil {
		style = style.Background(c)
	}
	if cfg.Bold != nil && *cfg.Bold {
		style = style.Bold(true)
	}
	if cfg.Italic != nil && *cfg.Italic {
		style = style.Italic(true)
	}
	if cfg.Underline != nil && *cfg.Underline {
		style = style.Underline(true)
	}
	if cfg.Strikethrough != nil && *cfg.Strikethrough {
		style = style.Strikethrough(true)
	}

	return style
}

// parseColor accepts a color string or a {light, dark} map.
func parseColor(value any) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]any:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}

// Get returns the style of role, or an empty style.
func (t *Theme) Get(role string) lipgloss.Style {
	if s, ok := t.styles[role]; ok {
		return s
	}
	return t.renderer.NewStyle()
}

// Render renders text with the style of role.
func (t *Theme) Render(role, text string) string {
	return t.Get(role).Render(text)
}

// Renderer returns the renderer the styles were created with.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// Style implements output.StyleProvider.
func (t *Theme) Style(semantic output.SemanticType) output.TextStyle {
	role := string(semantic)
	return output.TextStyleFunc(func(text string) string {
		return t.Render(role, text)
	})
}

// IsAvailable implements output.StyleProvider.
func (t *Theme) IsAvailable() bool {
	return t.Name != Plain
}

// MarkdownStyle implements output.StyleProvider.
func (t *Theme) MarkdownStyle() string {
	switch {
	case t.Name == Plain:
		return "notty"
	case t.dark:
		return "dark"
	default:
		return "light"
	}
}
