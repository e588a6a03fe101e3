package fzf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/cache"
	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/utils"
)

const (
	previewTimeout = 5 * time.Second
	previewCacheMB = 4
)

// ErrNoSelection is returned when the finder is closed without a pick.
var ErrNoSelection = errors.New("no note selected")

type Fetcher interface {
	GetNote(ctx context.Context, id int64, opts api.GetOptions) (*note.Note, error)
}

var find = fuzzyfinder.Find

// FuzzyFinder picks a note from a sidebar listing, previewing the first
// page of the highlighted note.
type FuzzyFinder struct {
	Header   string
	entries  []note.SidebarEntry
	fetch    Fetcher
	previews *cache.Cache
	log      zerolog.Logger
}

func NewFuzzyFinder(entries []note.SidebarEntry, fetch Fetcher, header string, log zerolog.Logger) *FuzzyFinder {
	previews, err := cache.New(previewCacheMB)
	if err != nil {
		log.Warn().Err(err).Msg("preview cache disabled")
	}
	return &FuzzyFinder{
		Header:   header,
		entries:  entries,
		fetch:    fetch,
		previews: previews,
		log:      log,
	}
}

// Run shows the finder, seeded with query when it is not empty.
func (f *FuzzyFinder) Run(query string) (note.SidebarEntry, error) {
	if len(f.entries) == 0 {
		return note.SidebarEntry{}, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := find(f.entries, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) || idx < 0 {
		return note.SidebarEntry{}, ErrNoSelection
	}
	if err != nil {
		return note.SidebarEntry{}, fmt.Errorf("error selecting note: %w", err)
	}
	return f.entries[idx], nil
}

func (f *FuzzyFinder) label(i int) string {
	e := f.entries[i]
	return fmt.Sprintf("%s  #%d", e.Title, e.ID)
}

func (f *FuzzyFinder) renderPreview(i, w, _ int) string {
	if i < 0 || i >= len(f.entries) {
		return ""
	}
	id := f.entries[i].ID

	if f.previews != nil {
		if v, ok, err := f.previews.Get(id); err == nil && ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
	defer cancel()

	n, err := f.fetch.GetNote(ctx, id, api.GetOptions{Page: 1})
	if err != nil {
		f.log.Debug().Err(err).Int64("id", id).Msg("preview fetch failed")
		return "Error loading note: " + api.MessageOr(err, err.Error())
	}

	md, err := markup.ToMarkdown(n.Content)
	if err != nil {
		md = n.Content
	}
	out, err := utils.RenderMarkdownPreview("# "+n.Title+"\n\n"+md, w)
	if err != nil {
		return "Error rendering markdown"
	}

	if f.previews != nil {
		if err := f.previews.Put(id, out); err != nil {
			f.log.Debug().Err(err).Msg("preview not cached")
		}
	}
	return out
}
