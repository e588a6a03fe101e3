package notes

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	open              key.Binding
	edit              key.Binding
	newNote           key.Binding
	search            key.Binding
	reload            key.Binding
	prevPage          key.Binding
	nextPage          key.Binding
	gotoPage          key.Binding
	togglePublic      key.Binding
	copyURL           key.Binding
	toggleSidebar     key.Binding
	switchFocus       key.Binding
	toggleHelp        key.Binding
	quit              key.Binding
	forceQuit         key.Binding
	save              key.Binding
	cancel            key.Binding
	submit            key.Binding
	switchField       key.Binding
	toggleSidebarEdit key.Binding
	launch            key.Binding
	confirm           key.Binding
	decline           key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		newNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		gotoPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		togglePublic: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle public"),
		),
		copyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		toggleSidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "sidebar"),
		),
		switchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		switchField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "title/body"),
		),
		toggleSidebarEdit: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "sidebar"),
		),
		launch: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open editor"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.open, k.edit, k.newNote, k.search, k.toggleSidebar, k.toggleHelp, k.quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.save, k.cancel, k.switchField, k.toggleSidebarEdit, k.launch}
}

func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.open, k.edit, k.newNote, k.search, k.reload},
		{k.prevPage, k.nextPage, k.gotoPage},
		{k.togglePublic, k.copyURL, k.toggleSidebar, k.switchFocus},
		{k.toggleHelp, k.quit},
	}
}

// helpKeys adapts the map to help.KeyMap for the current mode.
type helpKeys struct {
	keys    *keyMap
	editing bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.editing {
		return h.keys.editHelp()
	}
	return h.keys.browseHelp()
}

func (h helpKeys) FullHelp() [][]key.Binding {
	if h.editing {
		return [][]key.Binding{h.keys.editHelp()}
	}
	return h.keys.fullHelp()
}
