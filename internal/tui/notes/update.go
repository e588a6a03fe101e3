package notes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/editor"
	"github.com/Paintersrp/kn/internal/state"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.renderPreview()
		return m, m.ensureAttached()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noteLoadedMsg:
		return m, m.handleNoteLoaded(msg)
	case noteLoadFailedMsg:
		return m, m.handleNoteLoadFailed(msg)
	case fullContentMsg:
		return m, m.handleFullContent(msg)
	case noteSavedMsg:
		return m, m.handleNoteSaved(msg)
	case noteSaveFailedMsg:
		return m, m.handleNoteSaveFailed(msg)
	case sidebarLoadedMsg:
		return m, m.handleSidebarLoaded(msg)

	case toastExpiredMsg:
		m.toast.expire(msg.seq)
		return m, nil
	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copyStatus = copyIdle
			m.renderPreview()
		}
		return m, nil

	case editor.ReadyMsg:
		cmd := m.bridge.HandleReady(msg)
		if m.focus == focusTitle {
			cmd = nil
		}
		if m.launchOnReady && m.bridge.State() == editor.Attached {
			m.launchOnReady = false
			cmd = tea.Batch(cmd, m.bridge.Launch())
		}
		return m, cmd
	case editor.FailedMsg:
		if err := m.bridge.HandleFailed(msg); err != nil {
			m.launchOnReady = false
			return m, m.showToast(editorFailedMessage+err.Error(), toastError)
		}
		return m, nil
	case editor.ExternalClosedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("external editor exited")
			return m, m.showToast(editorFailedMessage+msg.Err.Error(), toastError)
		}
		return m, m.showToast(externalClosedMessage, toastInfo)

	case state.BootstrapChangedMsg:
		cmd := m.applyBootstrap(msg.Data)
		return m, tea.Batch(cmd, m.watchBootstrap())
	case state.BootstrapWatcherErrMsg:
		m.log.Warn().Err(msg.Err).Msg("bootstrap watcher")
		return m, m.watchBootstrap()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.forward(msg)
}

// forward hands non-key messages, such as cursor blinks, to the focused
// component.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case focusPage:
		m.pageInput, cmd = m.pageInput.Update(msg)
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusEditor:
		cmd = m.bridge.Update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.forceQuit) {
		return tea.Quit
	}

	if m.confirm.visible {
		switch {
		case key.Matches(msg, m.keys.confirm):
			return m.confirm.resolve(true)
		case key.Matches(msg, m.keys.decline):
			return m.confirm.resolve(false)
		}
		return nil
	}

	switch m.focus {
	case focusPage:
		return m.handlePageKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	if m.editing {
		return m.handleEditKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.open):
		if item, ok := m.sidebar.SelectedItem().(sidebarItem); ok {
			return m.selectNote(item.entry.ID, 1)
		}
		return nil
	case key.Matches(msg, m.keys.edit):
		return m.startEditing()
	case key.Matches(msg, m.keys.newNote):
		return m.newNote()
	case key.Matches(msg, m.keys.search):
		return m.focusSearch()
	case key.Matches(msg, m.keys.reload):
		return m.searchNotes()
	case key.Matches(msg, m.keys.prevPage):
		return m.prevPage()
	case key.Matches(msg, m.keys.nextPage):
		return m.nextPage()
	case key.Matches(msg, m.keys.gotoPage):
		return m.openPageInput()
	case key.Matches(msg, m.keys.togglePublic):
		return m.togglePublic()
	case key.Matches(msg, m.keys.copyURL):
		return m.copyPublicURL()
	case key.Matches(msg, m.keys.toggleSidebar):
		return m.toggleSidebar()
	case key.Matches(msg, m.keys.switchFocus):
		if m.focus == focusSidebar && !m.collapsed {
			m.focus = focusViewer
		} else {
			m.focus = focusSidebar
		}
		return nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	var cmd tea.Cmd
	if m.focus == focusViewer || m.collapsed {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.sidebar, cmd = m.sidebar.Update(msg)
	}
	return cmd
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.save):
		return m.updateNote(true)
	case key.Matches(msg, m.keys.cancel):
		return m.cancelEditing()
	case key.Matches(msg, m.keys.toggleSidebarEdit):
		return m.toggleSidebar()
	case key.Matches(msg, m.keys.launch):
		return m.bridge.Launch()
	case key.Matches(msg, m.keys.switchField):
		if m.focus == focusTitle {
			m.titleInput.Blur()
			m.focus = focusEditor
			return m.bridge.Focus()
		}
		m.focus = focusTitle
		return m.titleInput.Focus()
	}

	if m.focus == focusTitle {
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return cmd
	}
	return m.bridge.Update(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.submit):
		m.blurInputs()
		return m.searchNotes()
	case key.Matches(msg, m.keys.cancel):
		m.blurInputs()
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *Model) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.submit):
		input := m.pageInput.Value()
		m.blurInputs()
		return m.goToPage(input)
	case key.Matches(msg, m.keys.cancel):
		m.blurInputs()
		return nil
	}

	var cmd tea.Cmd
	m.pageInput, cmd = m.pageInput.Update(msg)
	return cmd
}

// blurInputs returns focus from the search or page input to the pane
// underneath.
func (m *Model) blurInputs() {
	m.searchInput.Blur()
	m.pageInput.Blur()
	m.pageInput.Reset()
	if m.editing {
		m.focus = focusEditor
	} else {
		m.focus = focusSidebar
	}
}
