package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/bootstrap"
	"github.com/Paintersrp/kn/internal/cache"
	"github.com/Paintersrp/kn/internal/constants"
	"github.com/Paintersrp/kn/internal/editor"
	"github.com/Paintersrp/kn/internal/note"
)

// Repository is the slice of the notes API the controller drives.
type Repository interface {
	GetNote(ctx context.Context, id int64, opts api.GetOptions) (*note.Note, error)
	ListNotes(ctx context.Context) ([]note.SidebarEntry, error)
	SearchNotes(ctx context.Context, query string) ([]note.SidebarEntry, error)
	UpdateNote(ctx context.Context, id int64, update note.Update) (*note.Note, error)
}

type Preferences interface {
	SidebarCollapsed() bool
	SetSidebarCollapsed(bool) error
}

// BootstrapSource yields a message whenever the bootstrap payload changes.
type BootstrapSource interface {
	Start() tea.Cmd
}

type Deps struct {
	Client        Repository
	Prefs         Preferences
	Editor        editor.Factory
	EditorOptions map[string]any
	Bootstrap     *bootstrap.Data
	Watcher       BootstrapSource
	Logger        zerolog.Logger
	ResolveURL    func(string) string
	Workspace     string
	Placeholder   string
	ToastDuration time.Duration
	CacheSizeMB   int64
	InitialPath   string
}

type focusArea int

const (
	focusSidebar focusArea = iota
	focusViewer
	focusSearch
	focusPage
	focusTitle
	focusEditor
)

const (
	copyIdle = "copy"
	copyDone = "copied"
)

type Model struct {
	client  Repository
	prefs   Preferences
	bridge  *editor.Bridge
	cache   *cache.Cache
	watcher BootstrapSource
	log     zerolog.Logger
	keys    *keyMap
	help    help.Model
	resolve func(string) string

	boot          *bootstrap.Data
	initialPath   string
	workspace     string
	placeholder   string
	toastDuration time.Duration

	sidebar     list.Model
	entries     []note.SidebarEntry
	hasNotes    bool
	author      note.Author
	collapsed   bool
	searchInput textinput.Model
	searchGen   uint64
	autoSelect  bool

	selected    *note.Note
	selectedID  int64
	pendingID   int64
	loading     bool
	generation  uint64
	currentPage int
	totalPages  int
	pageInput   textinput.Model
	viewport    viewport.Model
	preview     string
	shown       previewKey
	saving      bool

	editing       bool
	editBaseline  string
	editSource    string
	titleInput    textinput.Model
	attachPending bool
	launchOnReady bool

	copyStatus string
	copySeq    int

	toast   toast
	confirm confirmDialog
	spinner spinner.Model
	focus   focusArea

	width  int
	height int
}

func New(d Deps) (*Model, error) {
	if d.Client == nil {
		return nil, fmt.Errorf("notes: a repository is required")
	}
	if d.CacheSizeMB <= 0 {
		d.CacheSizeMB = constants.DefaultCacheSizeMB
	}
	c, err := cache.New(d.CacheSizeMB)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	if d.Bootstrap == nil {
		d.Bootstrap = bootstrap.Empty()
	}
	if d.Placeholder == "" {
		d.Placeholder = constants.DefaultPlaceholderTitle
	}
	if d.ToastDuration <= 0 {
		d.ToastDuration = constants.DefaultToastDuration * time.Millisecond
	}
	if d.ResolveURL == nil {
		d.ResolveURL = func(s string) string { return s }
	}
	if d.Prefs == nil {
		d.Prefs = memoryPrefs{}
	}
	if d.Editor == nil {
		d.Editor = func() editor.Adapter { return editor.NewTextarea() }
	}
	options := d.EditorOptions
	if options == nil {
		options = d.Bootstrap.EditorConfig
	}

	keys := newKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	search := textinput.New()
	search.Placeholder = "搜索笔记…"
	search.Prompt = "/ "

	page := textinput.New()
	page.Placeholder = "页码"
	page.Prompt = "第 "
	page.CharLimit = 6

	title := textinput.New()
	title.Placeholder = d.Placeholder
	title.Prompt = "标题: "
	title.CharLimit = 200

	m := &Model{
		client:  d.Client,
		prefs:   d.Prefs,
		cache:   c,
		watcher: d.Watcher,
		log:     d.Logger,
		keys:    keys,
		help:    help.New(),
		resolve: d.ResolveURL,
		bridge: editor.NewBridge(d.Editor, editor.Config{
			Placeholder: "在此输入笔记内容…",
			Options:     options,
		}, d.Logger.With().Str("component", "editor").Logger()),

		boot:          d.Bootstrap,
		initialPath:   d.InitialPath,
		workspace:     d.Workspace,
		placeholder:   d.Placeholder,
		toastDuration: d.ToastDuration,

		sidebar:     newSidebar(),
		hasNotes:    d.Bootstrap.HasNotes,
		author:      d.Bootstrap.Author(),
		collapsed:   d.Prefs.SidebarCollapsed(),
		searchInput: search,

		currentPage: 1,
		totalPages:  1,
		pageInput:   page,
		viewport:    viewport.New(0, 0),
		titleInput:  title,
		copyStatus:  copyIdle,
		spinner:     sp,
		focus:       focusSidebar,
	}
	m.setEntries(d.Bootstrap.SidebarNotes)

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.watchBootstrap()}

	if !m.boot.Loaded {
		m.autoSelect = true
		cmds = append(cmds, m.searchNotes())
	}
	if id, ok := bootstrap.InitialSelection(m.boot, m.initialPath); ok {
		m.autoSelect = false
		cmds = append(cmds, m.selectNote(id, 1))
	}

	return tea.Batch(cmds...)
}

func (m *Model) watchBootstrap() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Start()
}

type memoryPrefs struct{}

func (memoryPrefs) SidebarCollapsed() bool         { return false }
func (memoryPrefs) SetSidebarCollapsed(bool) error { return nil }
