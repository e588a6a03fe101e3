package list

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Paintersrp/kn/internal/note"
)

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	writePlain(&buf, []note.SidebarEntry{{ID: 1, Title: "Inbox"}, {ID: 12, Title: "周报"}})

	want := "1\tInbox\n12\t周报\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteJSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, nil); err != nil {
		t.Fatalf("writeJSON returned error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected an empty array, got %q", buf.String())
	}
}

func TestWriteStyledAlignsIDs(t *testing.T) {
	var buf bytes.Buffer
	writeStyled(&buf, []note.SidebarEntry{{ID: 1, Title: "a"}, {ID: 100, Title: "b"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "#1  ") {
		t.Fatalf("expected padded id, got %q", lines[0])
	}
}
