// Package bootstrap reads the startup payload a notes page embeds for its
// client: the sidebar listing, the signed-in user, the CSRF token and the
// editor configuration.
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Paintersrp/kn/internal/note"
)

type Data struct {
	SidebarNotes []note.SidebarEntry `json:"sidebar_notes"`
	HasNotes     bool                `json:"has_notes"`
	CSRFToken    string              `json:"csrf_token"`
	UserID       int64               `json:"user_id"`
	Username     string              `json:"username"`
	EditorConfig map[string]any      `json:"editor_config"`

	// Loaded is false when no payload was found and defaults are in use.
	Loaded bool `json:"-"`
}

func Empty() *Data {
	return &Data{
		SidebarNotes: []note.SidebarEntry{},
		EditorConfig: map[string]any{},
	}
}

// Parse decodes a payload. Unknown or missing fields fall back to the empty
// defaults; only malformed JSON is an error.
func Parse(raw []byte) (*Data, error) {
	var wire struct {
		Data
		CKEditorConfig map[string]any `json:"ckeditor_config"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Empty(), fmt.Errorf("bootstrap: %w", err)
	}

	d := wire.Data
	if d.SidebarNotes == nil {
		d.SidebarNotes = []note.SidebarEntry{}
	}
	if d.EditorConfig == nil {
		d.EditorConfig = wire.CKEditorConfig
	}
	if d.EditorConfig == nil {
		d.EditorConfig = map[string]any{}
	}
	d.Loaded = true
	return &d, nil
}

// Load reads the payload at path. The returned Data is never nil: a
// missing file yields defaults with a nil error, a broken one yields
// defaults with the error for logging.
func Load(path string) (*Data, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Empty(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("bootstrap: %w", err)
	}
	return Parse(raw)
}

func (d *Data) Author() note.Author {
	if d == nil {
		return note.Author{}
	}
	return note.Author{ID: d.UserID, Username: d.Username}
}

// EditorOption returns a typed editor setting, if present.
func EditorOption[T any](d *Data, key string) (T, bool) {
	var zero T
	if d == nil || d.EditorConfig == nil {
		return zero, false
	}
	v, ok := d.EditorConfig[key].(T)
	return v, ok
}

// NoteIDFromPath extracts the id from a /knowledge/{id}/ path or URL. Like
// the page router it reads the leading digits of the segment and rejects
// zero.
func NoteIDFromPath(ref string) (int64, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}

	parts := strings.FieldsFunc(ref, func(r rune) bool { return r == '/' })
	if len(parts) < 2 || parts[0] != "knowledge" {
		return 0, false
	}

	digits := parts[1]
	for i, r := range digits {
		if r < '0' || r > '9' {
			digits = digits[:i]
			break
		}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// InitialSelection picks the note to open at startup: the one named by the
// path, else the first sidebar entry when the user has notes.
func InitialSelection(d *Data, path string) (int64, bool) {
	if id, ok := NoteIDFromPath(path); ok {
		return id, true
	}
	if d != nil && d.HasNotes && len(d.SidebarNotes) > 0 {
		return d.SidebarNotes[0].ID, true
	}
	return 0, false
}
