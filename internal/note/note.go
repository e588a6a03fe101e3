// Package note holds the notes data model shared by the API client and the
// terminal UI.
package note

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Project struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Note is a persisted document. A nil ID marks a draft that the server has
// never seen.
type Note struct {
	ID         *int64      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	IsPublic   bool        `json:"is_public"`
	PublicURL  string      `json:"public_url,omitempty"`
	Project    *Project    `json:"project,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
	Author     Author      `json:"author"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// SidebarEntry is the {id, title} projection used by the note list.
type SidebarEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Update is the PUT body for a note.
type Update struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

// CreatedFormat is the server's created_at layout.
const CreatedFormat = "2006-01-02 15:04"

func NewDraft(title string, author Author) *Note {
	return &Note{
		Title:     title,
		Author:    author,
		CreatedAt: time.Now().Format(CreatedFormat),
	}
}

// IDPtr returns a pointer to id, for building notes in code.
func IDPtr(id int64) *int64 {
	return &id
}

func (n *Note) IsDraft() bool {
	return n == nil || n.ID == nil
}

// Key returns the server id and whether the note has one.
func (n *Note) Key() (int64, bool) {
	if n.IsDraft() {
		return 0, false
	}
	return *n.ID, true
}

func (n *Note) Entry() SidebarEntry {
	id, _ := n.Key()
	return SidebarEntry{ID: id, Title: n.Title}
}

// Pages reports the pagination cursor, 1/1 when the server sent none.
func (n *Note) Pages() (current, total int) {
	if n == nil || n.Pagination == nil {
		return 1, 1
	}
	current, total = n.Pagination.CurrentPage, n.Pagination.TotalPages
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	return current, total
}

// Paged reports whether Content only holds one page of the body.
func (n *Note) Paged() bool {
	_, total := n.Pages()
	return total > 1
}

func (n *Note) Created() (time.Time, bool) {
	if n == nil || n.CreatedAt == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseLocal(n.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Age renders the creation time relative to now, or the raw server string
// when it cannot be parsed.
func (n *Note) Age() string {
	t, ok := n.Created()
	if !ok {
		return n.CreatedAt
	}
	return humanize.Time(t)
}

func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.ID != nil {
		c.ID = IDPtr(*n.ID)
	}
	if n.Project != nil {
		p := *n.Project
		c.Project = &p
	}
	if n.Pagination != nil {
		p := *n.Pagination
		c.Pagination = &p
	}
	return &c
}

// SyncTitle patches the title of the entry with the given id in place and
// reports whether one was found.
func SyncTitle(entries []SidebarEntry, id int64, title string) bool {
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Title = title
			return true
		}
	}
	return false
}
