package show

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/kn/internal/note"
)

func plainOutput(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestRenderRaw(t *testing.T) {
	var buf bytes.Buffer
	n := &note.Note{ID: note.IDPtr(1), Title: "Plan", Content: "<p>Ship <strong>it</strong></p>"}

	if err := render(&buf, n, true, 80); err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	if got := buf.String(); got != "# Plan\n\nShip **it**\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderStyledShowsPages(t *testing.T) {
	plainOutput(t)

	var buf bytes.Buffer
	n := &note.Note{
		ID:         note.IDPtr(1),
		Title:      "Plan",
		Content:    "<p>first page</p>",
		Author:     note.Author{Username: "ada"},
		Pagination: &note.Pagination{CurrentPage: 1, TotalPages: 3},
	}

	if err := render(&buf, n, false, 80); err != nil {
		t.Fatalf("render returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "first page") || !strings.Contains(out, "page 1/3") || !strings.Contains(out, "@ada") {
		t.Fatalf("unexpected output %q", out)
	}
}
