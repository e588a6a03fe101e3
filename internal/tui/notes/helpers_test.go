package notes

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/bootstrap"
	"github.com/Paintersrp/kn/internal/editor"
	"github.com/Paintersrp/kn/internal/note"
)

type fakeRepo struct {
	mu        sync.Mutex
	notes     map[int64]*note.Note
	pages     map[int64][]string
	entries   []note.SidebarEntry
	getErr    map[int64]error
	updateErr error
	normalize func(string) string
	searchErr error
	calls     []string
	updates   []note.Update
}

func newFakeRepo(notes ...*note.Note) *fakeRepo {
	r := &fakeRepo{
		notes:  map[int64]*note.Note{},
		pages:  map[int64][]string{},
		getErr: map[int64]error{},
	}
	for _, n := range notes {
		id, _ := n.Key()
		r.notes[id] = n
		r.entries = append(r.entries, n.Entry())
	}
	return r
}

func (r *fakeRepo) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *fakeRepo) GetNote(_ context.Context, id int64, opts api.GetOptions) (*note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if opts.FullContent {
		r.record("get %d full", id)
	} else {
		r.record("get %d page=%d", id, opts.Page)
	}
	if err := r.getErr[id]; err != nil {
		return nil, err
	}
	n, ok := r.notes[id]
	if !ok {
		return nil, &api.APIError{StatusCode: 404, Message: "Not found."}
	}

	out := n.Clone()
	if pages := r.pages[id]; len(pages) > 0 && !opts.FullContent {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		out.Content = pages[page-1]
		out.Pagination = &note.Pagination{CurrentPage: page, TotalPages: len(pages)}
	}
	return out, nil
}

func (r *fakeRepo) ListNotes(context.Context) ([]note.SidebarEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("list")
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return append([]note.SidebarEntry(nil), r.entries...), nil
}

func (r *fakeRepo) SearchNotes(_ context.Context, query string) ([]note.SidebarEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("search %s", query)
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	var out []note.SidebarEntry
	for _, e := range r.entries {
		if e.Title == query {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateNote(_ context.Context, id int64, update note.Update) (*note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("put %d", id)
	r.updates = append(r.updates, update)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	n := r.notes[id].Clone()
	n.Title = update.Title
	n.Content = update.Content
	if r.normalize != nil {
		n.Content = r.normalize(update.Content)
	}
	n.IsPublic = update.IsPublic
	n.Pagination = nil
	r.notes[id] = n
	return n.Clone(), nil
}

func (r *fakeRepo) callLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type stubEditor struct {
	content   string
	destroyed bool
	failWith  error
}

func (s *stubEditor) Create(_ editor.Config, _ editor.ContentSink, ready editor.ReadyFunc) tea.Cmd {
	if s.failWith != nil {
		err := s.failWith
		return func() tea.Msg { return ready(err) }
	}
	return nil
}

func (s *stubEditor) SetContent(content string) { s.content = content }
func (s *stubEditor) Content() string           { return s.content }
func (s *stubEditor) Update(tea.Msg) tea.Cmd    { return nil }
func (s *stubEditor) View() string              { return s.content }
func (s *stubEditor) SetSize(int, int)          {}
func (s *stubEditor) Focus() tea.Cmd            { return nil }

func (s *stubEditor) Destroy() error {
	s.destroyed = true
	return nil
}

type editorFactory struct {
	created  []*stubEditor
	failWith error
}

func (f *editorFactory) factory() editor.Factory {
	return func() editor.Adapter {
		e := &stubEditor{failWith: f.failWith}
		f.created = append(f.created, e)
		return e
	}
}

type recordingPrefs struct {
	collapsed bool
	writes    []bool
}

func (p *recordingPrefs) SidebarCollapsed() bool { return p.collapsed }

func (p *recordingPrefs) SetSidebarCollapsed(v bool) error {
	p.collapsed = v
	p.writes = append(p.writes, v)
	return nil
}

func htmlNote(id int64, title, content string) *note.Note {
	return &note.Note{
		ID:      note.IDPtr(id),
		Title:   title,
		Content: content,
		Author:  note.Author{ID: 1, Username: "ada"},
	}
}

type testEnv struct {
	model   *Model
	repo    *fakeRepo
	editors *editorFactory
	prefs   *recordingPrefs
}

func newTestEnv(t *testing.T, repo *fakeRepo, mutate ...func(*Deps)) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:    repo,
		editors: &editorFactory{},
		prefs:   &recordingPrefs{},
	}
	d := Deps{
		Client: repo,
		Prefs:  env.prefs,
		Editor: env.editors.factory(),
		Bootstrap: &bootstrap.Data{
			SidebarNotes: append([]note.SidebarEntry(nil), repo.entries...),
			HasNotes:     len(repo.entries) > 0,
			Username:     "ada",
			UserID:       1,
			Loaded:       true,
		},
		Logger:        zerolog.Nop(),
		ToastDuration: time.Millisecond,
		Workspace:     "test",
	}
	for _, fn := range mutate {
		fn(&d)
	}

	m, err := New(d)
	if err != nil {
		t.Fatalf("failed to create model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	env.model = m
	return env
}

// drive runs cmd and every command it produces, feeding controller
// messages back into the model. Timers and other messages are returned
// without being delivered.
func drive(m *Model, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case noteLoadedMsg, noteLoadFailedMsg, fullContentMsg, noteSavedMsg,
			noteSaveFailedMsg, sidebarLoadedMsg, editor.ReadyMsg, editor.FailedMsg:
			seen = append(seen, msg)
			_, next := m.Update(msg)
			queue = append(queue, next)
		default:
			seen = append(seen, msg)
		}
	}
	return seen
}

func (e *testEnv) open(t *testing.T, id int64) {
	t.Helper()
	drive(e.model, e.model.selectNote(id, 1))
	if got, ok := e.model.selected.Key(); !ok || got != id {
		t.Fatalf("expected note %d to be selected, got %+v", id, e.model.selected)
	}
}

func (e *testEnv) edit(t *testing.T) {
	t.Helper()
	drive(e.model, e.model.startEditing())
	if !e.model.editing {
		t.Fatalf("expected edit mode")
	}
	if e.model.bridge.State() != editor.Attached {
		t.Fatalf("expected attached editor, got %s", e.model.bridge.State())
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
