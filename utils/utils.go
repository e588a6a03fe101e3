package utils

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	previewHorizontalSpace = 4
	defaultWrapWidth       = 80
)

func AppendIfNotExists(slice []string, value string) []string {
	for _, v := range slice {
		if v == value {
			return slice
		}
	}
	return append(slice, value)
}

// RenderMarkdownPreview styles markdown for a pane w cells wide, using the
// color profile lipgloss detected for the output.
func RenderMarkdownPreview(markdown string, w int) (string, error) {
	wrap := w - previewHorizontalSpace
	if wrap <= 0 {
		wrap = defaultWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Truncate cuts s to w terminal cells, counting wide CJK runes as two.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// PadRight fills s with spaces up to w terminal cells.
func PadRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}
