package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Paintersrp/kn/internal/bootstrap"
)

// ResolveNoteID accepts a bare note id, a /knowledge/{id}/ path or a full
// note URL.
func ResolveNoteID(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("a note id or path is required")
	}

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("invalid note id %d", id)
		}
		return id, nil
	}

	if id, ok := bootstrap.NoteIDFromPath(arg); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%q is not a note id or /knowledge/{id}/ path", arg)
}

// NotePath is the page path of a note, the form the notes panel opens.
func NotePath(id int64) string {
	return fmt.Sprintf("/knowledge/%d/", id)
}
