package notes

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/utils"
)

const defaultPreviewWidth = 80

// fullKey caches the unpaginated body of a note.
type fullKey int64

// previewKey caches a rendered page. The digest keeps a stale render from
// surviving a save that changed the body.
type previewKey struct {
	id    int64
	page  int
	width int
	sum   [32]byte
}

func (m *Model) renderPreview() {
	if m.selected == nil {
		m.preview = m.emptyPreview()
		m.viewport.SetContent(m.preview)
		m.shown = previewKey{}
		return
	}

	width := m.viewport.Width
	if width <= 0 {
		width = defaultPreviewWidth
	}

	key := previewKey{
		id:    m.selectedID,
		page:  m.currentPage,
		width: width,
		sum:   sha256.Sum256([]byte(m.selected.Content)),
	}

	var body string
	if v, ok, err := m.cache.Get(key); err == nil && ok {
		body, _ = v.(string)
	} else {
		body = renderBody(m.selected.Content, width)
		if !m.selected.IsDraft() {
			if err := m.cache.Put(key, body); err != nil {
				m.log.Debug().Err(err).Msg("preview not cached")
			}
		}
	}

	m.preview = formatPreviewHeader(m.selected, m.copyStatus) + "\n\n" + body
	m.viewport.SetContent(m.preview)
	if key.id != m.shown.id || key.page != m.shown.page {
		m.viewport.GotoTop()
	}
	m.shown = key
}

func renderBody(html string, width int) string {
	md, err := markup.ToMarkdown(html)
	if err != nil {
		md = html
	}
	if strings.TrimSpace(md) == "" {
		return mutedStyle.Render("（空白笔记）")
	}

	out, err := utils.RenderMarkdownPreview(md, width)
	if err != nil {
		return md
	}
	return out
}

func formatPreviewHeader(n *note.Note, copyStatus string) string {
	meta := []string{}
	if n.Author.Username != "" {
		meta = append(meta, "@"+n.Author.Username)
	}
	if age := n.Age(); age != "" {
		meta = append(meta, age)
	}
	if n.Project != nil && n.Project.Title != "" {
		meta = append(meta, n.Project.Title)
	}
	if id, ok := n.Key(); ok {
		meta = append(meta, fmt.Sprintf("#%d", id))
	}

	visibility := mutedStyle.Render("私有")
	if n.IsPublic {
		visibility = publicBadgeStyle.Render("公开")
		if n.PublicURL != "" {
			visibility += mutedStyle.Render(" · y " + copyStatus)
		}
	}

	return titleStyle.Render(n.Title) + "\n" +
		mutedStyle.Render(strings.Join(meta, " · ")) + "  " + visibility
}

func (m *Model) emptyPreview() string {
	if !m.hasNotes && len(m.entries) == 0 {
		return mutedStyle.Render("还没有笔记。按 n 创建第一篇笔记。")
	}
	return mutedStyle.Render("选择一篇笔记进行查看。")
}
