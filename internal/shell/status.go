package shell

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"chepyshell/internal/completion"
	"chepyshell/internal/theme"
)

const defaultWidth = 80

// statusLine renders the right-aligned status text, with hint on the left.
func statusLine(th *theme.Theme, width int, hint, status string) string {
	if width <= 0 {
		width = defaultWidth
	}
	right := th.Render(theme.RoleRPrompt, status)
	room := width - ansi.StringWidth(right) - 1
	if room < 0 {
		return ansi.Truncate(right, width, "")
	}

	left := ansi.Truncate(hint, room, "…")
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if left == "" {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, right)
	}
	return left + strings.Repeat(" ", gap) + right
}

// hintText renders the best completion and its description.
func hintText(th *theme.Theme, completions []completion.Completion) string {
	if len(completions) == 0 {
		return ""
	}
	top := completions[0]

	role := theme.RoleCompletionCurrent
	if top.Style == completion.StyleChainBreak {
		role = theme.RoleChainBreak
	}
	hint := th.Render(role, top.Text)
	if top.DisplayMeta != "" {
		hint += " " + th.Render(theme.RoleCompletionMeta, top.DisplayMeta)
	}
	if more := len(completions) - 1; more > 0 {
		hint += th.Render(theme.RoleCompletionMeta, " (+"+strconv.Itoa(more)+")")
	}
	return hint
}

// redrawAbove rewrites the line above the cursor without moving it.
func redrawAbove(w io.Writer, line string) {
	_, _ = io.WriteString(w, ansi.SaveCursor+ansi.CursorUp(1)+"\r"+ansi.EraseEntireLine+line+ansi.RestoreCursor)
}
