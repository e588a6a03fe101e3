package fzf

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/note"
)

type countingFetcher struct {
	calls int
	err   error
}

func (c *countingFetcher) GetNote(_ context.Context, id int64, _ api.GetOptions) (*note.Note, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &note.Note{ID: note.IDPtr(id), Title: "Groceries", Content: "<ul><li>milk</li></ul>"}, nil
}

func stubFind(t *testing.T, fn func(slice interface{}, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)) {
	t.Helper()
	prev := find
	find = fn
	t.Cleanup(func() { find = prev })
}

func TestRunReturnsPickedEntry(t *testing.T) {
	entries := []note.SidebarEntry{{ID: 1, Title: "Inbox"}, {ID: 2, Title: "Groceries"}}
	var labels []string
	stubFind(t, func(_ interface{}, itemFunc func(int) string, _ ...fuzzyfinder.Option) (int, error) {
		for i := range entries {
			labels = append(labels, itemFunc(i))
		}
		return 1, nil
	})

	f := NewFuzzyFinder(entries, &countingFetcher{}, "Select note", zerolog.Nop())
	got, err := f.Run("gro")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("expected note 2, got %+v", got)
	}
	if labels[0] != "Inbox  #1" {
		t.Fatalf("unexpected label %q", labels[0])
	}
}

func TestRunAbort(t *testing.T) {
	stubFind(t, func(interface{}, func(int) string, ...fuzzyfinder.Option) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	})

	f := NewFuzzyFinder([]note.SidebarEntry{{ID: 1, Title: "Inbox"}}, &countingFetcher{}, "", zerolog.Nop())
	if _, err := f.Run(""); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestRunWithoutEntries(t *testing.T) {
	f := NewFuzzyFinder(nil, &countingFetcher{}, "", zerolog.Nop())
	if _, err := f.Run(""); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestPreviewIsCached(t *testing.T) {
	fetch := &countingFetcher{}
	f := NewFuzzyFinder([]note.SidebarEntry{{ID: 4, Title: "Groceries"}}, fetch, "", zerolog.Nop())

	first := f.renderPreview(0, 80, 20)
	second := f.renderPreview(0, 80, 20)

	if !strings.Contains(first, "milk") {
		t.Fatalf("expected rendered note in preview, got %q", first)
	}
	if first != second || fetch.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetch.calls)
	}
	if f.renderPreview(-1, 80, 20) != "" {
		t.Fatalf("expected empty preview without a selection")
	}
}

func TestPreviewShowsServerError(t *testing.T) {
	fetch := &countingFetcher{err: &api.APIError{StatusCode: 404, Message: "Not found."}}
	f := NewFuzzyFinder([]note.SidebarEntry{{ID: 4, Title: "Gone"}}, fetch, "", zerolog.Nop())

	if got := f.renderPreview(0, 80, 20); got != "Error loading note: Not found." {
		t.Fatalf("unexpected preview %q", got)
	}
}
