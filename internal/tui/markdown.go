package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached per wrap width. A fixed style avoids the terminal
// background queries WithAutoStyle performs, which can block on some
// terminals.
var mdRenderers = map[string]*glamour.TermRenderer{}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := strconv.Itoa(width)
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
