package notes

import "github.com/Paintersrp/kn/internal/note"

type noteLoadedMsg struct {
	gen  uint64
	id   int64
	page int
	note *note.Note
	// full is the unpaginated content, nil when it could not be fetched.
	full *string
}

type noteLoadFailedMsg struct {
	gen uint64
	id  int64
	err error
}

type fullContentMsg struct {
	gen     uint64
	id      int64
	content string
	err     error
}

type noteSavedMsg struct {
	id   int64
	full bool
	note *note.Note
	sent note.Update
}

type noteSaveFailedMsg struct {
	full bool
	err  error
	// revertPublic restores the visibility flag of a failed toggle.
	revertPublic *bool
}

type sidebarLoadedMsg struct {
	gen     uint64
	query   string
	entries []note.SidebarEntry
	err     error
}

type toastExpiredMsg struct {
	seq int
}

type copyResetMsg struct {
	seq int
}
