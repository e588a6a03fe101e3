package notes

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/bootstrap"
	"github.com/Paintersrp/kn/internal/note"
)

func TestSelectNoteLoadsNote(t *testing.T) {
	env := newTestEnv(t, newFakeRepo(htmlNote(1, "First", "<p>hello</p>")))
	m := env.model
	m.copyStatus = copyDone

	cmd := m.selectNote(1, 1)
	if !m.loading {
		t.Fatalf("expected loading while the fetch is in flight")
	}
	if m.copyStatus != copyIdle {
		t.Fatalf("expected copy status reset, got %q", m.copyStatus)
	}

	drive(m, cmd)

	if m.loading {
		t.Fatalf("expected loading to be cleared")
	}
	if m.selected == nil || m.selected.Title != "First" {
		t.Fatalf("unexpected selection: %+v", m.selected)
	}
	if m.currentPage != 1 || m.totalPages != 1 {
		t.Fatalf("expected 1/1, got %d/%d", m.currentPage, m.totalPages)
	}
	if got := env.repo.callLog(); !reflect.DeepEqual(got, []string{"get 1 page=1"}) {
		t.Fatalf("unexpected calls: %v", got)
	}
	if full, ok := m.fullContent(1); !ok || full != "<p>hello</p>" {
		t.Fatalf("expected unpaged content cached as full content, got %q", full)
	}
}

func TestPagedNoteFetchesFullContentOnce(t *testing.T) {
	repo := newFakeRepo(htmlNote(1, "Long", "<p>one</p><p>two</p><p>three</p>"))
	repo.pages[1] = []string{"<p>one</p>", "<p>two</p>", "<p>three</p>"}
	env := newTestEnv(t, repo)
	m := env.model

	env.open(t, 1)
	if m.currentPage != 1 || m.totalPages != 3 {
		t.Fatalf("expected 1/3, got %d/%d", m.currentPage, m.totalPages)
	}

	drive(m, m.nextPage())
	drive(m, m.nextPage())
	if m.currentPage != 3 {
		t.Fatalf("expected page 3, got %d", m.currentPage)
	}
	if cmd := m.nextPage(); cmd != nil {
		t.Fatalf("expected nextPage to stop at the last page")
	}
	drive(m, m.prevPage())

	want := []string{"get 1 page=1", "get 1 full", "get 1 page=2", "get 1 page=3", "get 1 page=2"}
	if got := repo.callLog(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected calls:\n got %v\nwant %v", got, want)
	}
	if m.selected.Content != "<p>two</p>" {
		t.Fatalf("expected page two content, got %q", m.selected.Content)
	}
}

func TestSelectNoteDropsStaleResponse(t *testing.T) {
	env := newTestEnv(t, newFakeRepo(
		htmlNote(1, "A", "<p>a</p>"),
		htmlNote(2, "B", "<p>b</p>"),
	))
	m := env.model

	first := m.selectNote(1, 1)
	second := m.selectNote(2, 1)
	if second == nil {
		t.Fatalf("expected a different note to supersede the pending load")
	}

	drive(m, second)
	drive(m, first)

	if id, _ := m.selected.Key(); id != 2 {
		t.Fatalf("expected note 2 to stay selected, got %d", id)
	}
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
}

func TestSelectNoteIsNoopWhileSameNoteLoads(t *testing.T) {
	env := newTestEnv(t, newFakeRepo(htmlNote(1, "A", "<p>a</p>")))
	m := env.model

	cmd := m.selectNote(1, 1)
	if again := m.selectNote(1, 1); again != nil {
		t.Fatalf("expected repeated selection to be ignored while loading")
	}
	drive(m, cmd)

	if again := m.selectNote(1, 1); again != nil {
		t.Fatalf("expected re-selecting the open note to be ignored")
	}
	if got := len(env.repo.callLog()); got != 1 {
		t.Fatalf("expected a single fetch, got %d", got)
	}
}

func TestSelectNoteFailureClearsSelection(t *testing.T) {
	repo := newFakeRepo(htmlNote(1, "A", "<p>a</p>"), htmlNote(2, "B", "<p>b</p>"))
	repo.getErr[2] = &api.NetworkError{Method: "GET", Path: "/api/notes/2/", Err: errors.New("refused")}
	env := newTestEnv(t, repo)
	m := env.model

	env.open(t, 1)
	drive(m, m.selectNote(2, 1))

	if m.selected != nil {
		t.Fatalf("expected selection cleared, got %+v", m.selected)
	}
	if m.loading {
		t.Fatalf("expected loading cleared after failure")
	}
	if !m.toast.visible || m.toast.kind != toastError || m.toast.message != loadFailedMessage {
		t.Fatalf("unexpected toast: %+v", m.toast)
	}
}

func TestSelectWhileEditingAsksFirst(t *testing.T) {
	env := newTestEnv(t, newFakeRepo(
		htmlNote(1, "A", "<p>a</p>"),
		htmlNote(2, "B", "<p>b</p>"),
	))
	m := env.model
	env.open(t, 1)
	env.edit(t)

	if cmd := m.selectNote(2, 1); cmd != nil {
		t.Fatalf("expected no fetch before confirmation")
	}
	if !m.confirm.visible || m.confirm.message != confirmSwitchNote {
		t.Fatalf("expected switch confirmation, got %+v", m.confirm)
	}

	drive(m, m.confirm.resolve(false))
	if !m.editing {
		t.Fatalf("expected declining to keep edit mode")
	}
	if id, _ := m.selected.Key(); id != 1 {
		t.Fatalf("expected note 1 to stay selected, got %d", id)
	}

	m.selectNote(2, 1)
	drive(m, m.confirm.resolve(true))
	if m.editing {
		t.Fatalf("expected edit mode to end")
	}
	if id, _ := m.selected.Key(); id != 2 {
		t.Fatalf("expected note 2 selected, got %d", id)
	}
	if !env.editors.created[0].destroyed {
		t.Fatalf("expected the editor to be destroyed")
	}
}

func TestGoToPageValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		kind    toastKind
	}{
		{"not a number", "abc", invalidPageMessage, toastError},
		{"zero", "0", invalidPageMessage, toastError},
		{"negative", "-2", invalidPageMessage, toastError},
		{"too large", "9", "页码不能超过总页数 3。", toastError},
		{"current page", "1", samePageMessage, toastInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pagedModel(t, 1, 3)
			if cmd := m.goToPage(tt.input); cmd == nil {
				t.Fatalf("expected a toast command")
			}
			if m.loading {
				t.Fatalf("expected no navigation")
			}
			if m.toast.message != tt.message || m.toast.kind != tt.kind {
				t.Fatalf("unexpected toast: %+v", m.toast)
			}
		})
	}
}

func TestGoToPageIsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(1, 12).Draw(rt, "total")
		current := rapid.IntRange(1, total).Draw(rt, "current")
		target := rapid.IntRange(-20, 40).Draw(rt, "target")

		m := pagedModel(t, current, total)
		before := m.toast.seq
		m.goToPage(strconv.Itoa(target))

		navigated := m.loading
		toasts := m.toast.seq - before

		valid := target >= 1 && target <= total && target != current
		if valid {
			if !navigated || toasts != 0 {
				rt.Fatalf("page %d of %d from %d: navigated=%v toasts=%d", target, total, current, navigated, toasts)
			}
			return
		}
		if navigated || toasts != 1 {
			rt.Fatalf("page %d of %d from %d: navigated=%v toasts=%d", target, total, current, navigated, toasts)
		}
	})
}

func pagedModel(t *testing.T, current, total int) *Model {
	t.Helper()
	m, err := New(Deps{Client: newFakeRepo(), Bootstrap: bootstrap.Empty(), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("failed to create model: %v", err)
	}
	m.selected = &note.Note{
		ID:         note.IDPtr(5),
		Title:      "Paged",
		Pagination: &note.Pagination{CurrentPage: current, TotalPages: total},
	}
	m.selectedID = 5
	m.currentPage, m.totalPages = current, total
	return m
}
