package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Paintersrp/kn/internal/note"
)

type GetOptions struct {
	// Page selects one page of a paged body; zero leaves it to the server.
	Page int
	// FullContent asks for the whole unpaged body.
	FullContent bool
}

func (o GetOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.FullContent {
		q.Set("full_content", "true")
	}
	return q
}

func notePath(id int64) string {
	return fmt.Sprintf("/api/notes/%d/", id)
}

func (c *Client) GetNote(ctx context.Context, id int64, opts GetOptions) (*note.Note, error) {
	var out note.Note
	if err := c.doJSON(ctx, http.MethodGet, notePath(id), opts.query(), nil, &out); err != nil {
		return nil, err
	}
	if out.ID == nil {
		out.ID = note.IDPtr(id)
	}
	return &out, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]note.SidebarEntry, error) {
	var out []note.SidebarEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/all/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchNotes queries by title and body. A blank query lists everything.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]note.SidebarEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.ListNotes(ctx)
	}

	var out []note.SidebarEntry
	q := url.Values{"q": []string{query}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/search/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, update note.Update) (*note.Note, error) {
	var out note.Note
	if err := c.doJSON(ctx, http.MethodPut, notePath(id), nil, update, &out); err != nil {
		return nil, err
	}
	if out.ID == nil {
		out.ID = note.IDPtr(id)
	}
	return &out, nil
}
