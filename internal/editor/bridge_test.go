package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type fakeAdapter struct {
	content    string
	created    int
	destroyed  int
	createErr  error
	destroyErr error
	panicOnEnd bool
	sink       ContentSink
}

func (f *fakeAdapter) Create(cfg Config, sink ContentSink, ready ReadyFunc) tea.Cmd {
	f.created++
	f.sink = sink
	err := f.createErr
	return func() tea.Msg { return ready(err) }
}

func (f *fakeAdapter) SetContent(content string) { f.content = content }
func (f *fakeAdapter) Content() string           { return f.content }
func (f *fakeAdapter) Update(tea.Msg) tea.Cmd    { return nil }
func (f *fakeAdapter) View() string              { return "fake:" + f.content }
func (f *fakeAdapter) SetSize(int, int)          {}
func (f *fakeAdapter) Focus() tea.Cmd            { return nil }

func (f *fakeAdapter) Destroy() error {
	f.destroyed++
	if f.panicOnEnd {
		panic("boom")
	}
	return f.destroyErr
}

type recorder struct {
	adapters []*fakeAdapter
	next     func() *fakeAdapter
}

func (r *recorder) factory() Adapter {
	a := &fakeAdapter{}
	if r.next != nil {
		a = r.next()
	}
	r.adapters = append(r.adapters, a)
	return a
}

func newTestBridge(r *recorder) *Bridge {
	b := NewBridge(r.factory, Config{}, zerolog.Nop())
	b.SetMount(40, 10)
	return b
}

func attachAndWait(t *testing.T, b *Bridge, content string) {
	t.Helper()
	cmd := b.Attach(content)
	if cmd == nil {
		t.Fatalf("expected creation command")
	}
	msg, ok := cmd().(ReadyMsg)
	if !ok {
		t.Fatalf("expected ReadyMsg")
	}
	b.HandleReady(msg)
}

func TestAttachWithoutMountStaysDetached(t *testing.T) {
	r := &recorder{}
	b := NewBridge(r.factory, Config{}, zerolog.Nop())

	if cmd := b.Attach("hello"); cmd != nil {
		t.Fatalf("expected no command without a mount")
	}
	if b.State() != Detached || len(r.adapters) != 0 {
		t.Fatalf("expected no widget, state=%v adapters=%d", b.State(), len(r.adapters))
	}
	if got := b.Content("fallback"); got != "hello" {
		t.Fatalf("expected last known content, got %q", got)
	}
}

func TestAttachPushesContentOnReady(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)

	cmd := b.Attach("body")
	if b.State() != Attaching {
		t.Fatalf("expected attaching, got %v", b.State())
	}
	if r.adapters[0].content != "" {
		t.Fatalf("content must not be pushed before ready")
	}

	b.HandleReady(cmd().(ReadyMsg))

	if b.State() != Attached {
		t.Fatalf("expected attached, got %v", b.State())
	}
	if r.adapters[0].content != "body" {
		t.Fatalf("expected content pushed on ready, got %q", r.adapters[0].content)
	}
	if b.View() != "fake:body" {
		t.Fatalf("unexpected view %q", b.View())
	}
}

func TestAttachWhileAttachedSkipsCreation(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)
	attachAndWait(t, b, "one")

	if cmd := b.Attach("two"); cmd != nil {
		t.Fatalf("expected no creation command when attached")
	}
	if len(r.adapters) != 1 || r.adapters[0].created != 1 {
		t.Fatalf("expected a single widget, got %d", len(r.adapters))
	}
	if r.adapters[0].content != "two" {
		t.Fatalf("expected content pushed, got %q", r.adapters[0].content)
	}
}

func TestAttachWhileAttachingUpdatesPending(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)

	cmd := b.Attach("first")
	if again := b.Attach("second"); again != nil {
		t.Fatalf("expected second attach to be absorbed")
	}
	b.HandleReady(cmd().(ReadyMsg))

	if len(r.adapters) != 1 || r.adapters[0].content != "second" {
		t.Fatalf("expected one widget with latest content, got %d %q", len(r.adapters), r.adapters[0].content)
	}
}

func TestDetachSwallowsDestroyFailures(t *testing.T) {
	r := &recorder{next: func() *fakeAdapter { return &fakeAdapter{destroyErr: errors.New("gone")} }}
	b := newTestBridge(r)
	attachAndWait(t, b, "draft")
	r.adapters[0].content = "edited"

	b.Detach()

	if b.State() != Detached {
		t.Fatalf("expected detached, got %v", b.State())
	}
	if r.adapters[0].destroyed != 1 {
		t.Fatalf("expected destroy to be called once")
	}
	if got := b.Content(""); got != "edited" {
		t.Fatalf("expected last known buffer, got %q", got)
	}

	r.next = func() *fakeAdapter { return &fakeAdapter{panicOnEnd: true} }
	attachAndWait(t, b, "again")
	b.Detach()
	if b.State() != Detached {
		t.Fatalf("expected panic in destroy to be contained")
	}
}

func TestCreationFailureLeavesNoInstance(t *testing.T) {
	r := &recorder{next: func() *fakeAdapter { return &fakeAdapter{createErr: errors.New("no tty")} }}
	b := newTestBridge(r)

	msg, ok := b.Attach("body")().(FailedMsg)
	if !ok {
		t.Fatalf("expected FailedMsg")
	}
	err := b.HandleFailed(msg)

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if b.State() != Detached || b.instance != nil {
		t.Fatalf("expected no instance after failure")
	}
	if r.adapters[0].destroyed != 1 {
		t.Fatalf("expected half-built widget to be destroyed")
	}
	if got := b.Content(""); got != "body" {
		t.Fatalf("expected last known content, got %q", got)
	}
	if b.View() != "" || b.Update(nil) != nil {
		t.Fatalf("detached bridge must render nothing")
	}
}

func TestStaleReadyIsIgnored(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)

	stale := b.Attach("one")
	b.Detach()
	fresh := b.Attach("two")

	b.HandleReady(stale().(ReadyMsg))
	if b.State() != Attaching {
		t.Fatalf("stale ready must not attach, got %v", b.State())
	}
	if err := b.HandleFailed(FailedMsg{seq: 1, Err: errors.New("late")}); err != nil {
		t.Fatalf("stale failure must be ignored, got %v", err)
	}

	b.HandleReady(fresh().(ReadyMsg))
	if b.State() != Attached || r.adapters[1].content != "two" {
		t.Fatalf("expected fresh widget attached with content, got %v %q", b.State(), r.adapters[1].content)
	}
	if r.adapters[0].destroyed != 1 {
		t.Fatalf("expected superseded widget destroyed")
	}
}

func TestRemountKeepsUnsavedBuffer(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)
	attachAndWait(t, b, "saved")
	r.adapters[0].content = "unsaved edit"

	cmd := b.Remount()
	if cmd == nil {
		t.Fatalf("expected re-creation command")
	}
	b.HandleReady(cmd().(ReadyMsg))

	if len(r.adapters) != 2 || r.adapters[0].destroyed != 1 {
		t.Fatalf("expected old widget destroyed and a new one created")
	}
	if got := b.Content(""); got != "unsaved edit" {
		t.Fatalf("expected buffer to survive remount, got %q", got)
	}

	if again := b.Remount(); again == nil {
		t.Fatalf("expected remount to be repeatable")
	}
	if b.Remount() != nil {
		t.Fatalf("expected remount while attaching to be a no-op")
	}
}

func TestSinkUpdatesLastKnownForCurrentAttachment(t *testing.T) {
	r := &recorder{}
	b := newTestBridge(r)
	attachAndWait(t, b, "a")
	sink := r.adapters[0].sink

	b.Detach()
	sink("late write")
	if got := b.Content(""); got == "late write" {
		t.Fatalf("sink from a destroyed widget must be ignored")
	}

	attachAndWait(t, b, "b")
	b.state = Detached
	r.adapters[1].sink("from watcher")
	if got := b.Content(""); got != "from watcher" {
		t.Fatalf("expected sink content, got %q", got)
	}
}

func TestContentFallbackWhenNeverAttached(t *testing.T) {
	b := NewBridge(nil, Config{}, zerolog.Nop())
	if got := b.Content("note body"); got != "note body" {
		t.Fatalf("expected fallback, got %q", got)
	}
	b.SetContent("x")
	b.Forget()
	if got := b.Content("y"); got != "y" {
		t.Fatalf("expected fallback after forget, got %q", got)
	}
}

func TestFactoryFor(t *testing.T) {
	if _, err := FactoryFor("vim", ""); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
	f, err := FactoryFor("external", "nano")
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if _, ok := f().(*External); !ok {
		t.Fatalf("expected external adapter")
	}
	f, _ = FactoryFor("", "")
	if _, ok := f().(*Textarea); !ok {
		t.Fatalf("expected textarea adapter by default")
	}
}
